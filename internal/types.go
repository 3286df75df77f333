package internal

// RawRecord is one row of an externally parsed tabular dataset. Column
// presence and naming are not guaranteed; consumers probe candidate column
// names via util.Probe.
type RawRecord map[string]any

type ExtractedProduct struct {
	Code     string
	Quantity int
	RawName  string
	Unit     string
	Category string
}

type InventoryMatch struct {
	Found       bool
	Stock       int
	Sufficient  bool
	MatchedName string
	Lot         string
	ExpiryRaw   string
	Score       float64
}

type ExpiryState string

const (
	ExpiryNoDate        ExpiryState = "no_date"
	ExpiryInvalidFormat ExpiryState = "invalid_format"
	ExpiryExpired       ExpiryState = "expired"
	ExpiryNear          ExpiryState = "near_expiry"
	ExpiryWatch         ExpiryState = "watch"
	ExpiryCurrent       ExpiryState = "current"
)

type ExpiryResult struct {
	State         ExpiryState
	DaysRemaining int
	Alert         bool
}

type DocumentType string

const (
	DocLegal                DocumentType = "Legal"
	DocFinancial            DocumentType = "Financial"
	DocTechnical            DocumentType = "Technical"
	DocWarranty             DocumentType = "Warranty"
	DocCertification        DocumentType = "Certification"
	DocRegulatoryMedical    DocumentType = "RegulatoryMedical"
	DocQualityMedical       DocumentType = "QualityMedical"
	DocSpecializedPersonnel DocumentType = "SpecializedPersonnel"
	DocGeneral              DocumentType = "General"
)

type RequiredDocument struct {
	Name      string
	Type      DocumentType
	Mandatory bool
}

type TenderStatus string

const (
	StatusGreen  TenderStatus = "verde"
	StatusYellow TenderStatus = "amarillo"
	StatusRed    TenderStatus = "rojo"
)

type InsufficientProduct struct {
	Product       ExtractedProduct
	Required      int
	Available     int
	Shortfall     int
	InventoryName string
}

type AvailableProduct struct {
	Product   ExtractedProduct
	Required  int
	Available int
	Surplus   int
	Lot       string
	Expiry    string
}

type ExpiryAlert struct {
	Product       string
	State         ExpiryState
	DaysRemaining int
}

type CategoryCount struct {
	Total     int
	Available int
}

// TenderEvaluation is the aggregate verdict for one tender row. Built fresh
// per evaluation and never mutated after return.
type TenderEvaluation struct {
	Status            TenderStatus
	ProductsAnalyzed  int
	ProductsFound     int
	ProductsWithStock int
	Unmatched         []ExtractedProduct
	Insufficient      []InsufficientProduct
	Available         []AvailableProduct
	ExpiryAlerts      []ExpiryAlert
	ByCategory        map[string]CategoryCount
	RequiredDocuments []RequiredDocument
	Observations      []string
}

// ResultRow is the flattened presentation/export form of one evaluation.
type ResultRow struct {
	ID                int
	Tender            string
	Status            TenderStatus
	ProductsAnalyzed  int
	ProductsOK        int
	Unmatched         int
	InsufficientStock int
	ExpiryAlerts      int
	DocumentsRequired int
	Observations      string
}
