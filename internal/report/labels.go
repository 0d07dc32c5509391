package report

// Labels are the fixed strings the composers print
type Labels struct {
	DateFormat string

	SafetyRoundTitle string
	SJATitle         string

	Date          string
	Location      string
	Inspector     string
	Responsible   string
	Status        string
	OrgNumber     string
	Address       string
	Description   string
	Uncategorized string

	Items       string
	OK          string
	Deviations  string
	NA          string
	Unanswered  string
	Completion  string
	StatusChart string

	Checklist  string
	Findings   string
	NoFindings string
	Title      string
	Severity   string
	DueDate    string

	Hazards      string
	HighRiskRows string
	HighRisk     string
	MediumRisk   string
	LowRisk      string
	Unassessed   string
	RiskChart    string
	Probability  string
	Consequence  string
	Measures     string
	NoMeasures   string
	Participants string
	Role         string
	Participant  string

	Images     string
	Signatures string
}

// DefaultLabels returns English labels
func DefaultLabels() Labels {
	return Labels{
		DateFormat: "2006-01-02",

		SafetyRoundTitle: "Safety round",
		SJATitle:         "Job safety analysis",

		Date:          "Date",
		Location:      "Location",
		Inspector:     "Inspector",
		Responsible:   "Responsible",
		Status:        "Status",
		OrgNumber:     "Org. no.",
		Address:       "Address",
		Description:   "Description",
		Uncategorized: "Other",

		Items:       "Items",
		OK:          "OK",
		Deviations:  "Deviations",
		NA:          "N/A",
		Unanswered:  "Not answered",
		Completion:  "Completed",
		StatusChart: "Item status",

		Checklist:  "Checklist",
		Findings:   "Findings",
		NoFindings: "No findings were registered.",
		Title:      "Title",
		Severity:   "Severity",
		DueDate:    "Due",

		Hazards:      "Hazards",
		HighRiskRows: "High risk",
		HighRisk:     "High",
		MediumRisk:   "Medium",
		LowRisk:      "Low",
		Unassessed:   "Not assessed",
		RiskChart:    "Risk level",
		Probability:  "P",
		Consequence:  "C",
		Measures:     "Measures",
		NoMeasures:   "No measures were registered.",
		Participants: "Participants",
		Role:         "Role",
		Participant:  "Participant",

		Images:     "Images",
		Signatures: "Signatures",
	}
}

// NorwegianLabels returns the labels used by the Norwegian web application
func NorwegianLabels() Labels {
	return Labels{
		DateFormat: "02.01.2006",

		SafetyRoundTitle: "Vernerunde",
		SJATitle:         "Sikker jobbanalyse",

		Date:          "Dato",
		Location:      "Lokasjon",
		Inspector:     "Gjennomført av",
		Responsible:   "Ansvarlig",
		Status:        "Status",
		OrgNumber:     "Org.nr.",
		Address:       "Adresse",
		Description:   "Beskrivelse",
		Uncategorized: "Annet",

		Items:       "Punkter",
		OK:          "OK",
		Deviations:  "Avvik",
		NA:          "Ikke relevant",
		Unanswered:  "Ikke besvart",
		Completion:  "Fullført",
		StatusChart: "Status på punkter",

		Checklist:  "Sjekkliste",
		Findings:   "Funn",
		NoFindings: "Ingen funn ble registrert.",
		Title:      "Tittel",
		Severity:   "Alvorlighet",
		DueDate:    "Frist",

		Hazards:      "Farer",
		HighRiskRows: "Høy risiko",
		HighRisk:     "Høy",
		MediumRisk:   "Middels",
		LowRisk:      "Lav",
		Unassessed:   "Ikke vurdert",
		RiskChart:    "Risikonivå",
		Probability:  "S",
		Consequence:  "K",
		Measures:     "Tiltak",
		NoMeasures:   "Ingen tiltak ble registrert.",
		Participants: "Deltakere",
		Role:         "Rolle",
		Participant:  "Deltaker",

		Images:     "Bilder",
		Signatures: "Signaturer",
	}
}
