package core

// fields.go defines the canonical output layout.
//
// The order of CanonicalFields is the compatibility contract with every
// downstream consumer (spreadsheet writer, exception report, database COPY).
// Output headers are written in exactly this order.

// Field is one canonical output column name.
type Field string

// FieldCount is the number of canonical output columns.
const FieldCount = 126

const (
	FieldLEI                     Field = "LEI"
	FieldULI                     Field = "ULI"
	FieldLoanNumber              Field = "LoanNumber"
	FieldLastName                Field = "LastName"
	FieldFirstName               Field = "FirstName"
	FieldCoaLastName             Field = "Coa_LastName"
	FieldCoaFirstName            Field = "Coa_FirstName"
	FieldLender                  Field = "Lender"
	FieldProcessor               Field = "AA_Processor"
	FieldPostCloser              Field = "LDP_PostCloser"
	FieldErrorMadeBy             Field = "ErrorMadeBy"
	FieldApplDate                Field = "ApplDate"
	FieldLoanType                Field = "LoanType"
	FieldPurpose                 Field = "Purpose"
	FieldConstructionMethod      Field = "ConstructionMethod"
	FieldOccupancyType           Field = "OccupancyType"
	FieldLoanAmount              Field = "LoanAmount"
	FieldPreapproval             Field = "Preapproval"
	FieldAction                  Field = "Action"
	FieldActionDate              Field = "ActionDate"
	FieldAddress                 Field = "Address"
	FieldCity                    Field = "City"
	FieldState                   Field = "State_abrv"
	FieldZip                     Field = "Zip"
	FieldCounty                  Field = "County_5"
	FieldTract                   Field = "Tract_11"
	FieldEthnicity1              Field = "Ethnicity_1"
	FieldEthnicity2              Field = "Ethnicity_2"
	FieldEthnicity3              Field = "Ethnicity_3"
	FieldEthnicity4              Field = "Ethnicity_4"
	FieldEthnicity5              Field = "Ethnicity_5"
	FieldEthnicityOther          Field = "EthnicityOther"
	FieldCoaEthnicity1           Field = "Coa_Ethnicity_1"
	FieldCoaEthnicity2           Field = "Coa_Ethnicity_2"
	FieldCoaEthnicity3           Field = "Coa_Ethnicity_3"
	FieldCoaEthnicity4           Field = "Coa_Ethnicity_4"
	FieldCoaEthnicity5           Field = "Coa_Ethnicity_5"
	FieldCoaEthnicityOther       Field = "Coa_EthnicityOther"
	FieldEthnicityDeterminant    Field = "Ethnicity_Determinant"
	FieldCoaEthnicityDeterminant Field = "Coa_Ethnicity_Determinant"
	FieldRace1                   Field = "Race_1"
	FieldRace2                   Field = "Race_2"
	FieldRace3                   Field = "Race_3"
	FieldRace4                   Field = "Race_4"
	FieldRace5                   Field = "Race_5"
	FieldRace1Other              Field = "Race1_Other"
	FieldRace27Other             Field = "Race27_Other"
	FieldRace44Other             Field = "Race44_Other"
	FieldCoaRace1                Field = "CoaRace_1"
	FieldCoaRace2                Field = "CoaRace_2"
	FieldCoaRace3                Field = "CoaRace_3"
	FieldCoaRace4                Field = "CoaRace_4"
	FieldCoaRace5                Field = "CoaRace_5"
	FieldCoaRace1Other           Field = "CoaRace1_Other"
	FieldCoaRace27Other          Field = "CoaRace27_Other"
	FieldCoaRace44Other          Field = "CoaRace44_Other"
	FieldRaceDeterminant         Field = "Race_Determinant"
	FieldCoaRaceDeterminant      Field = "CoaRace_Determinant"
	FieldSex                     Field = "Sex"
	FieldCoaSex                  Field = "CoaSex"
	FieldSexDeterminant          Field = "Sex_Determinant"
	FieldCoaSexDeterminant       Field = "CoaSex_Determinant"
	FieldAge                     Field = "Age"
	FieldCoaAge                  Field = "Coa_Age"
	FieldIncome                  Field = "Income"
	FieldPurchaser               Field = "Purchaser"
	FieldRateSpread              Field = "Rate_Spread"
	FieldHOEPAStatus             Field = "HOEPA_Status"
	FieldLienStatus              Field = "Lien_Status"
	FieldCreditScore             Field = "CreditScore"
	FieldCoaCreditScore          Field = "Coa_CreditScore"
	FieldCreditModel             Field = "CreditModel"
	FieldCreditModelOther        Field = "CreditModelOther"
	FieldCoaCreditModel          Field = "Coa_CreditModel"
	FieldDenial1                 Field = "Denial1"
	FieldDenial2                 Field = "Denial2"
	FieldDenial3                 Field = "Denial3"
	FieldDenial4                 Field = "Denial4"
	FieldDenialOther             Field = "DenialOther"
	FieldTotalLoanCosts          Field = "TotalLoanCosts"
	FieldTotalPtsAndFees         Field = "TotalPtsAndFees"
	FieldOrigFees                Field = "OrigFees"
	FieldDiscountPoints          Field = "DiscountPoints"
	FieldLenderCredits           Field = "LenderCredits"
	FieldInterestRate            Field = "InterestRate"
	FieldAPR                     Field = "APR"
	FieldRateType                Field = "Rate_Type"
	FieldVarTerm                 Field = "Var_Term"
	FieldPrepaymentPenalty       Field = "PrepaymentPenalty"
	FieldDebtToIncome            Field = "DebtToIncome"
	FieldCLTV                    Field = "CLTV"
	FieldLoanTerm                Field = "Loan_Term"
	FieldLoanTermYears           Field = "Loan_Term_Years"
	FieldIntroRatePeriod         Field = "IntroRatePeriod"
	FieldBalloonPMT              Field = "BalloonPMT"
	FieldIOPMT                   Field = "IOPMT"
	FieldNegAM                   Field = "NegAM"
	FieldNonAmortz               Field = "NonAmortz"
	FieldPropertyValue           Field = "PropertyValue"
	FieldMHSecPropType           Field = "MHSecPropType"
	FieldMHLandPropInt           Field = "MHLandPropInt"
	FieldTotalUnits              Field = "TotalUnits"
	FieldMFAHU                   Field = "MFAHU"
	FieldAPPSubmission           Field = "APPSubmission"
	FieldPayableInst             Field = "PayableInst"
	FieldNMLSRID                 Field = "NMLSRID"
	FieldAUSystem1               Field = "AUSystem1"
	FieldAUSystem2               Field = "AUSystem2"
	FieldAUSystem3               Field = "AUSystem3"
	FieldAUSystem4               Field = "AUSystem4"
	FieldAUSystem5               Field = "AUSystem5"
	FieldAUSystemOther           Field = "AUSystemOther"
	FieldAUSResult1              Field = "AUSResult1"
	FieldAUSResult2              Field = "AUSResult2"
	FieldAUSResult3              Field = "AUSResult3"
	FieldAUSResult4              Field = "AUSResult4"
	FieldAUSResult5              Field = "AUSResult5"
	FieldAUSResultOther          Field = "AUSResultOther"
	FieldREMortgage              Field = "REMortgage"
	FieldOpenLOC                 Field = "OpenLOC"
	FieldBusCml                  Field = "BusCml"
	FieldRateLockDate            Field = "RateLockDate"
	FieldLoanProgram             Field = "LoanProgram"
	FieldBranch                  Field = "Branch"
	FieldBranchName              Field = "BranchName"
	FieldComments                Field = "Comments"
)

// CanonicalFields is the ordered output layout.
var CanonicalFields = [FieldCount]Field{
	FieldLEI, FieldULI, FieldLoanNumber,
	FieldLastName, FieldFirstName, FieldCoaLastName, FieldCoaFirstName,
	FieldLender, FieldProcessor, FieldPostCloser, FieldErrorMadeBy,
	FieldApplDate, FieldLoanType, FieldPurpose, FieldConstructionMethod,
	FieldOccupancyType, FieldLoanAmount, FieldPreapproval, FieldAction, FieldActionDate,
	FieldAddress, FieldCity, FieldState, FieldZip, FieldCounty, FieldTract,
	FieldEthnicity1, FieldEthnicity2, FieldEthnicity3, FieldEthnicity4, FieldEthnicity5,
	FieldEthnicityOther,
	FieldCoaEthnicity1, FieldCoaEthnicity2, FieldCoaEthnicity3, FieldCoaEthnicity4, FieldCoaEthnicity5,
	FieldCoaEthnicityOther,
	FieldEthnicityDeterminant, FieldCoaEthnicityDeterminant,
	FieldRace1, FieldRace2, FieldRace3, FieldRace4, FieldRace5,
	FieldRace1Other, FieldRace27Other, FieldRace44Other,
	FieldCoaRace1, FieldCoaRace2, FieldCoaRace3, FieldCoaRace4, FieldCoaRace5,
	FieldCoaRace1Other, FieldCoaRace27Other, FieldCoaRace44Other,
	FieldRaceDeterminant, FieldCoaRaceDeterminant,
	FieldSex, FieldCoaSex, FieldSexDeterminant, FieldCoaSexDeterminant,
	FieldAge, FieldCoaAge, FieldIncome, FieldPurchaser, FieldRateSpread,
	FieldHOEPAStatus, FieldLienStatus,
	FieldCreditScore, FieldCoaCreditScore, FieldCreditModel, FieldCreditModelOther, FieldCoaCreditModel,
	FieldDenial1, FieldDenial2, FieldDenial3, FieldDenial4, FieldDenialOther,
	FieldTotalLoanCosts, FieldTotalPtsAndFees, FieldOrigFees, FieldDiscountPoints, FieldLenderCredits,
	FieldInterestRate, FieldAPR, FieldRateType, FieldVarTerm, FieldPrepaymentPenalty,
	FieldDebtToIncome, FieldCLTV, FieldLoanTerm, FieldLoanTermYears, FieldIntroRatePeriod,
	FieldBalloonPMT, FieldIOPMT, FieldNegAM, FieldNonAmortz,
	FieldPropertyValue, FieldMHSecPropType, FieldMHLandPropInt, FieldTotalUnits, FieldMFAHU,
	FieldAPPSubmission, FieldPayableInst, FieldNMLSRID,
	FieldAUSystem1, FieldAUSystem2, FieldAUSystem3, FieldAUSystem4, FieldAUSystem5, FieldAUSystemOther,
	FieldAUSResult1, FieldAUSResult2, FieldAUSResult3, FieldAUSResult4, FieldAUSResult5, FieldAUSResultOther,
	FieldREMortgage, FieldOpenLOC, FieldBusCml,
	FieldRateLockDate, FieldLoanProgram, FieldBranch, FieldBranchName, FieldComments,
}

// AUS field families, in slot order.
var (
	ausSystemFields = [...]Field{FieldAUSystem1, FieldAUSystem2, FieldAUSystem3, FieldAUSystem4, FieldAUSystem5}
	ausResultFields = [...]Field{FieldAUSResult1, FieldAUSResult2, FieldAUSResult3, FieldAUSResult4, FieldAUSResult5}
	dateFields      = [...]Field{FieldApplDate, FieldActionDate, FieldRateLockDate}
)

// blankByDesign lists review columns that are always written empty.
var blankByDesign = [...]Field{FieldErrorMadeBy, FieldComments}

var fieldIndex = func() map[Field]int {
	idx := make(map[Field]int, FieldCount)
	for i, f := range CanonicalFields {
		if _, dup := idx[f]; dup {
			panic("duplicate canonical field: " + string(f))
		}
		idx[f] = i
	}
	return idx
}()

// FieldIndex returns the output position of f.
func FieldIndex(f Field) (int, bool) {
	i, ok := fieldIndex[f]
	return i, ok
}

// IsCanonical reports whether name is a canonical field name (exact spelling).
func IsCanonical(name string) bool {
	_, ok := fieldIndex[Field(name)]
	return ok
}

// Header returns the canonical column names as strings, in output order.
func Header() []string {
	h := make([]string, FieldCount)
	for i, f := range CanonicalFields {
		h[i] = string(f)
	}
	return h
}
