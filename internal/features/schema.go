package features

// Raw attribute names as they appear in scoring payloads and import records.
const (
	FieldRequestID           = "RichiestaFinanziamentoID"
	FieldAge                 = "Eta"
	FieldSex                 = "Sesso"
	FieldEducation           = "TitoloStudio"
	FieldGrossIncome         = "RedditoLordoUltimoAnno"
	FieldWorkExperience      = "AnniEsperienzaLavorativa"
	FieldRealEstate          = "InformazioniImmobile"
	FieldAmountRequested     = "ImportoRichiesto"
	FieldPurpose             = "ScopoFinanziamento"
	FieldInterestRate        = "TassoInteresseFinanziamento"
	FieldAmountToIncome      = "ImportoRichiestoDivisoReddito"
	FieldCreditHistoryYears  = "DurataDellaStoriaCreditiziaInAnni"
	FieldCreditScore         = "AffidabilitàCreditizia"
	FieldPriorDefault        = "InadempienzeFinanziamentiPrecedenti"
	FieldApprovalProbability = "ProbabilitaFinanziamentoApprovato"
)

// Column is one position of the model input.
// Numeric columns copy Field; indicator columns are 1 when Field equals Value.
type Column struct {
	Name  string
	Field string
	Value string
}

// Indicator reports whether the column is a one-hot column.
func (c Column) Indicator() bool {
	return c.Value != ""
}

func numeric(field string) Column {
	return Column{Name: field, Field: field}
}

func indicator(field, value string) Column {
	return Column{Name: field + "_" + value, Field: field, Value: value}
}

// Schema is the model input layout. The weights are positional, so the order is fixed.
var Schema = []Column{
	numeric(FieldAge),
	numeric(FieldGrossIncome),
	numeric(FieldWorkExperience),
	numeric(FieldAmountRequested),
	numeric(FieldInterestRate),
	numeric(FieldAmountToIncome),
	numeric(FieldCreditHistoryYears),
	numeric(FieldCreditScore),
	indicator(FieldSex, "M"),
	indicator(FieldEducation, "Dottorato di ricerca"),
	indicator(FieldEducation, "Laurea"),
	indicator(FieldRealEstate, "ProprietàMutuoDaEstinguere"),
	indicator(FieldRealEstate, "ProprietàMutuoEstinto"),
	indicator(FieldPurpose, "InizioAttivitaImprenditoriale"),
	indicator(FieldPurpose, "Medico"),
	indicator(FieldPurpose, "Personale"),
	indicator(FieldPurpose, "RistrutturazioneAltriDebiti"),
	indicator(FieldPurpose, "RistrutturazioneCasa"),
	indicator(FieldPriorDefault, "SI"),
}

// Width is the length of every aligned vector.
var Width = len(Schema)

// NumericFields lists the raw numeric attributes in schema order.
var NumericFields = []string{
	FieldAge,
	FieldGrossIncome,
	FieldWorkExperience,
	FieldAmountRequested,
	FieldInterestRate,
	FieldAmountToIncome,
	FieldCreditHistoryYears,
	FieldCreditScore,
}

// ColumnNames returns the schema column names in model order.
func ColumnNames() []string {
	names := make([]string, len(Schema))
	for i, c := range Schema {
		names[i] = c.Name
	}
	return names
}
