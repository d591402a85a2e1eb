package gpu

// Grid is an administrative territory. The API ships each grid with a
// geometry payload; wire structs simply never carry it.
type Grid struct {
	Name      string `json:"name"`
	Title     string `json:"title"`
	Type      string `json:"type"`
	RNU       bool   `json:"rnu"`
	Coastline bool   `json:"coastline"`
	Approved  bool   `json:"approved"`
}

// Grid types as reported by the GPU API.
const (
	GridTypeMunicipality = "COM"
	GridTypeIntercommune = "EPCI"
	GridTypeDepartment   = "DEP"
	GridTypeRegion       = "REG"
	GridTypeSCOT         = "SCOT"
	GridTypeNational     = "NATIONAL"
)

// GridTypes is the closed set of territory types accepted by the search
// filter, in display order.
var GridTypes = []string{
	GridTypeMunicipality,
	GridTypeIntercommune,
	GridTypeDepartment,
	GridTypeRegion,
	GridTypeSCOT,
	GridTypeNational,
}

// Document is an urban-planning instrument as returned by document search.
type Document struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Type        string `json:"documentType"`
	Status      string `json:"status"`
	LegalStatus string `json:"legalStatus"`
	StatusDate  string `json:"statusDate"`
	Partition   string `json:"partition"`
	Grid        *Grid  `json:"grid,omitempty"`
	UploadDate  string `json:"uploadDate"`
	UpdateDate  string `json:"updateDate"`
	FileID      string `json:"fileIdentifier,omitempty"`
}

// DocumentTypes is the closed set of document types.
var DocumentTypes = []string{"PLU", "PLUI", "CC", "POS", "PSMV", "SUP", "SCOT"}

// DocumentFamilies is the closed set of document families.
var DocumentFamilies = []string{"DU", "SUP", "SCOT"}

// LegalStatuses is the closed set of document legal statuses.
var LegalStatuses = []string{"APPROVED", "PENDING", "REJECTED", "UNKNOWN"}

// File is a written piece attached to a document.
type File struct {
	Name  string `json:"name"`
	Title string `json:"title,omitempty"`
	Path  string `json:"path"`
}

// Procedure is an administrative lifecycle step tied to one document and
// one territory.
type Procedure struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	DocumentType string `json:"documentType"`
	DocumentName string `json:"documentName"`
	Type         string `json:"procedureType"`
	ApprovalDate string `json:"approvalDate,omitempty"`
	Grid         *Grid  `json:"grid,omitempty"`
	Files        []File `json:"files,omitempty"`
}

// procedureLabels maps procedure-type codes to their legal names.
var procedureLabels = map[string]string{
	"E":   "Elaboration",
	"R":   "Révision",
	"RA":  "Révision allégée",
	"M":   "Modification",
	"MS":  "Modification simplifiée",
	"MEC": "Mise en compatibilité",
	"MAJ": "Mise à jour",
}

// ProcedureTypes is the closed set of procedure-type codes.
var ProcedureTypes = []string{"E", "R", "RA", "M", "MS", "MEC", "MAJ"}

// ProcedureLabel returns the human label for a procedure-type code, or the
// code itself when unknown.
func ProcedureLabel(code string) string {
	if label, ok := procedureLabels[code]; ok {
		return label
	}
	return code
}

// Model is a versioned CNIG document-model standard (cnig_<TYPE>_<YEAR>).
type Model struct {
	Name         string        `json:"name"`
	Title        string        `json:"title"`
	Description  string        `json:"description,omitempty"`
	Abstract     bool          `json:"abstract"`
	Type         string        `json:"documentType"`
	Parent       string        `json:"parent,omitempty"`
	FeatureTypes []FeatureType `json:"featureTypes,omitempty"`
}

// FeatureType is one feature class exposed by a document model.
type FeatureType struct {
	Name        string         `json:"name"`
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	Attributes  []AttributeDef `json:"attributes,omitempty"`
}

// AttributeDef describes a single attribute of a feature type.
type AttributeDef struct {
	Name        string `json:"name"`
	Title       string `json:"title,omitempty"`
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
}

// Category is a flat code-to-label reference entry (SUP and DU categories).
type Category struct {
	Code         string `json:"code"`
	Label        string `json:"label"`
	DocumentType string `json:"documentType,omitempty"`
}

// Feature is a geometry-stripped GeoJSON feature.
type Feature struct {
	ID         string         `json:"id,omitempty"`
	Type       string         `json:"type"`
	Properties map[string]any `json:"properties"`
}

// FeatureCollection wraps pruned features with their count.
type FeatureCollection struct {
	Type          string    `json:"type"`
	TotalFeatures int       `json:"totalFeatures"`
	Features      []Feature `json:"features"`
}
