package core

// aliases.go holds the header synonym tables.
//
// fieldAliases lists, per canonical field, the column spellings used by the
// supported exports, in lookup order:
//   - the LOS loan-level export ("Borrower Last Name", "Subject Property City", ...)
//   - the FFIEC HMDA LAR labels ("Universal Loan Identifier (ULI)", ...)
//   - the legacy fixed-width/text servicing extract (APPL_DATE, LN_AMT, ...)
//
// longFormNames maps the verbose data-field phrasing of the HMDA filing
// export directly to a canonical field. It drives Normalize.
//
// Both tables are read-only after init. Conflicting entries panic at startup.

import (
	"fmt"
	"strings"
)

var fieldAliases = map[Field][]string{
	FieldLEI:                {"Legal Entity Identifier", "LEI Number", "Lender LEI", "LEGAL_ENTITY_ID"},
	FieldULI:                {"Universal Loan Identifier", "ULI Number", "HMDA ULI", "Universal Loan ID", "UNIV_LOAN_ID"},
	FieldLoanNumber:         {"Loan Number", "Loan #", "Loan No", "Application Number", "Loan ID", "LN_NBR", "ApplNumb"},
	FieldLastName:           {"Borrower Last Name", "Last Name", "Applicant Last Name", "BORR_LAST_NM"},
	FieldFirstName:          {"Borrower First Name", "First Name", "Applicant First Name", "BORR_FIRST_NM"},
	FieldCoaLastName:        {"Co-Borrower Last Name", "CoBorrower Last Name", "Co-Applicant Last Name", "COBORR_LAST_NM"},
	FieldCoaFirstName:       {"Co-Borrower First Name", "CoBorrower First Name", "Co-Applicant First Name", "COBORR_FIRST_NM"},
	FieldLender:             {"Loan Officer", "Loan Officer Name", "Originator", "Lender Name", "LO Name", "LOAN_OFFICER"},
	FieldProcessor:          {"Loan Processor", "Processor", "Processor Name", "PROCESSOR"},
	FieldPostCloser:         {"Post Closer", "Closer", "Post-Closer", "Closer Name", "CLOSER"},
	FieldErrorMadeBy:        {"Error Made By"},
	FieldApplDate:           {"Application Date", "App Date", "Application Received Date", "APPL_DATE"},
	FieldLoanType:           {"Loan Type", "HMDA Loan Type", "LOAN_TYPE"},
	FieldPurpose:            {"Loan Purpose", "HMDA Loan Purpose", "LOAN_PURPOSE"},
	FieldConstructionMethod: {"Construction Method", "Construction Type", "CONSTR_METHOD"},
	FieldOccupancyType:      {"Occupancy Type", "Occupancy", "OCCUPANCY"},
	FieldLoanAmount:         {"Loan Amount", "Base Loan Amount", "Total Loan Amount", "LN_AMT"},
	FieldPreapproval:        {"Preapproval", "Pre-Approval", "PREAPPROVAL"},
	FieldAction:             {"Action Taken", "Action Code", "HMDA Action Taken", "ACTION_TAKEN"},
	FieldActionDate:         {"Action Taken Date", "Action Date", "ACTION_DATE"},
	FieldAddress:            {"Subject Property Address", "Property Address", "Street Address", "PROP_ADDR"},
	FieldCity:               {"Subject Property City", "Property City", "City", "PROP_CITY"},
	FieldState:              {"Subject Property State", "Property State", "State", "PROP_ST"},
	FieldZip:                {"Subject Property Zip", "Property Zip", "Zip Code", "ZIP", "PROP_ZIP"},
	FieldCounty:             {"County Code", "County", "FIPS County Code", "CNTY_CD"},
	FieldTract:              {"Census Tract", "Tract", "Census Tract Number", "CENSUS_TRACT"},

	FieldEthnicity1:     {"Borrower Ethnicity 1", "Applicant Ethnicity 1", "Ethnicity 1", "BORR_ETH_1"},
	FieldEthnicity2:     {"Borrower Ethnicity 2", "Applicant Ethnicity 2", "Ethnicity 2", "BORR_ETH_2"},
	FieldEthnicity3:     {"Borrower Ethnicity 3", "Applicant Ethnicity 3", "Ethnicity 3", "BORR_ETH_3"},
	FieldEthnicity4:     {"Borrower Ethnicity 4", "Applicant Ethnicity 4", "Ethnicity 4", "BORR_ETH_4"},
	FieldEthnicity5:     {"Borrower Ethnicity 5", "Applicant Ethnicity 5", "Ethnicity 5", "BORR_ETH_5"},
	FieldEthnicityOther: {"Borrower Ethnicity Other", "Applicant Ethnicity Free Form", "BORR_ETH_OTHER"},

	FieldCoaEthnicity1:     {"Co-Borrower Ethnicity 1", "Co-Applicant Ethnicity 1", "COBORR_ETH_1"},
	FieldCoaEthnicity2:     {"Co-Borrower Ethnicity 2", "Co-Applicant Ethnicity 2", "COBORR_ETH_2"},
	FieldCoaEthnicity3:     {"Co-Borrower Ethnicity 3", "Co-Applicant Ethnicity 3", "COBORR_ETH_3"},
	FieldCoaEthnicity4:     {"Co-Borrower Ethnicity 4", "Co-Applicant Ethnicity 4", "COBORR_ETH_4"},
	FieldCoaEthnicity5:     {"Co-Borrower Ethnicity 5", "Co-Applicant Ethnicity 5", "COBORR_ETH_5"},
	FieldCoaEthnicityOther: {"Co-Borrower Ethnicity Other", "Co-Applicant Ethnicity Free Form", "COBORR_ETH_OTHER"},

	FieldEthnicityDeterminant:    {"Borrower Ethnicity Collected Visual", "Ethnicity Observed", "BORR_ETH_OBS"},
	FieldCoaEthnicityDeterminant: {"Co-Borrower Ethnicity Collected Visual", "Co-Applicant Ethnicity Observed", "COBORR_ETH_OBS"},

	FieldRace1:       {"Borrower Race 1", "Applicant Race 1", "Race 1", "BORR_RACE_1"},
	FieldRace2:       {"Borrower Race 2", "Applicant Race 2", "Race 2", "BORR_RACE_2"},
	FieldRace3:       {"Borrower Race 3", "Applicant Race 3", "Race 3", "BORR_RACE_3"},
	FieldRace4:       {"Borrower Race 4", "Applicant Race 4", "Race 4", "BORR_RACE_4"},
	FieldRace5:       {"Borrower Race 5", "Applicant Race 5", "Race 5", "BORR_RACE_5"},
	FieldRace1Other:  {"Borrower American Indian Tribe", "Borrower Race American Indian Other", "BORR_RACE_AIAN_TXT"},
	FieldRace27Other: {"Borrower Other Asian Race", "Borrower Race Asian Other", "BORR_RACE_ASIAN_TXT"},
	FieldRace44Other: {"Borrower Other Pacific Islander Race", "Borrower Race Pacific Islander Other", "BORR_RACE_PI_TXT"},

	FieldCoaRace1:       {"Co-Borrower Race 1", "Co-Applicant Race 1", "COBORR_RACE_1"},
	FieldCoaRace2:       {"Co-Borrower Race 2", "Co-Applicant Race 2", "COBORR_RACE_2"},
	FieldCoaRace3:       {"Co-Borrower Race 3", "Co-Applicant Race 3", "COBORR_RACE_3"},
	FieldCoaRace4:       {"Co-Borrower Race 4", "Co-Applicant Race 4", "COBORR_RACE_4"},
	FieldCoaRace5:       {"Co-Borrower Race 5", "Co-Applicant Race 5", "COBORR_RACE_5"},
	FieldCoaRace1Other:  {"Co-Borrower American Indian Tribe", "Co-Borrower Race American Indian Other", "COBORR_RACE_AIAN_TXT"},
	FieldCoaRace27Other: {"Co-Borrower Other Asian Race", "Co-Borrower Race Asian Other", "COBORR_RACE_ASIAN_TXT"},
	FieldCoaRace44Other: {"Co-Borrower Other Pacific Islander Race", "Co-Borrower Race Pacific Islander Other", "COBORR_RACE_PI_TXT"},

	FieldRaceDeterminant:    {"Borrower Race Collected Visual", "Race Observed", "BORR_RACE_OBS"},
	FieldCoaRaceDeterminant: {"Co-Borrower Race Collected Visual", "Co-Applicant Race Observed", "COBORR_RACE_OBS"},
	FieldSex:                {"Borrower Sex", "Applicant Sex", "Sex", "BORR_SEX"},
	FieldCoaSex:             {"Co-Borrower Sex", "Co-Applicant Sex", "COBORR_SEX"},
	FieldSexDeterminant:     {"Borrower Sex Collected Visual", "Sex Observed", "BORR_SEX_OBS"},
	FieldCoaSexDeterminant:  {"Co-Borrower Sex Collected Visual", "Co-Applicant Sex Observed", "COBORR_SEX_OBS"},
	FieldAge:                {"Borrower Age", "Applicant Age", "Age", "BORR_AGE"},
	FieldCoaAge:             {"Co-Borrower Age", "Co-Applicant Age", "COBORR_AGE"},
	FieldIncome:             {"Total Income", "Gross Annual Income", "Income", "Annual Income", "INCOME"},
	FieldPurchaser:          {"Purchaser Type", "Type of Purchaser", "Investor Type", "PURCH_TYPE"},
	FieldRateSpread:         {"Rate Spread", "HMDA Rate Spread", "RATE_SPREAD"},
	FieldHOEPAStatus:        {"HOEPA Status", "HOEPA", "HOEPA_STAT"},
	FieldLienStatus:         {"Lien Status", "Lien Position", "LIEN_STATUS"},
	FieldCreditScore:        {"Borrower Credit Score", "Credit Score", "FICO", "Representative Score", "BORR_SCORE"},
	FieldCoaCreditScore:     {"Co-Borrower Credit Score", "Co-Applicant Credit Score", "CoBorrower FICO", "COBORR_SCORE"},
	FieldCreditModel:        {"Borrower Credit Model", "Credit Scoring Model", "BORR_SCORE_MODEL"},
	FieldCreditModelOther:   {"Borrower Credit Model Other", "Credit Scoring Model Other", "BORR_SCORE_MODEL_TXT"},
	FieldCoaCreditModel:     {"Co-Borrower Credit Model", "Co-Applicant Credit Scoring Model", "COBORR_SCORE_MODEL"},

	FieldDenial1:     {"Denial Reason 1", "Reason for Denial 1", "DENIAL_1"},
	FieldDenial2:     {"Denial Reason 2", "Reason for Denial 2", "DENIAL_2"},
	FieldDenial3:     {"Denial Reason 3", "Reason for Denial 3", "DENIAL_3"},
	FieldDenial4:     {"Denial Reason 4", "Reason for Denial 4", "DENIAL_4"},
	FieldDenialOther: {"Denial Reason Other", "Reason for Denial Other", "DENIAL_OTHER"},

	FieldTotalLoanCosts:    {"Total Loan Costs", "TLC", "TOT_LOAN_COSTS"},
	FieldTotalPtsAndFees:   {"Total Points and Fees", "Points and Fees", "TOT_PTS_FEES"},
	FieldOrigFees:          {"Origination Charges", "Origination Fees", "ORIG_CHARGES"},
	FieldDiscountPoints:    {"Discount Points", "DISC_POINTS"},
	FieldLenderCredits:     {"Lender Credits", "LENDER_CREDITS"},
	FieldInterestRate:      {"Interest Rate", "Note Rate", "Rate", "INT_RATE"},
	FieldAPR:               {"Annual Percentage Rate", "APR %", "APR_PCT"},
	FieldRateType:          {"Rate Type", "Amortization Type", "AMORT_TYPE"},
	FieldVarTerm:           {"Variable Term", "Variable Rate Term", "VAR_TERM"},
	FieldPrepaymentPenalty: {"Prepayment Penalty Term", "Prepayment Penalty", "PREPAY_TERM"},
	FieldDebtToIncome:      {"Debt to Income Ratio", "DTI", "Debt-to-Income Ratio", "DTI_RATIO"},
	FieldCLTV:              {"Combined Loan to Value Ratio", "CLTV %", "Combined LTV", "CLTV_RATIO"},
	FieldLoanTerm:          {"Loan Term", "Loan Term (Months)", "Term", "Term in Months", "LOAN_TERM"},
	FieldLoanTermYears:     {"Loan Term Years", "Term (Years)"},
	FieldIntroRatePeriod:   {"Introductory Rate Period", "Intro Rate Period", "ARM Initial Period", "INTRO_RATE_PERIOD"},
	FieldBalloonPMT:        {"Balloon Payment", "Balloon", "Balloon Indicator", "BALLOON_IND"},
	FieldIOPMT:             {"Interest Only Payment", "Interest Only", "Interest-Only Indicator", "IO_IND"},
	FieldNegAM:             {"Negative Amortization", "Neg Am", "NEG_AM_IND"},
	FieldNonAmortz:         {"Other Non-Amortizing Features", "Non-Amortizing Features", "NON_AMORT"},
	FieldPropertyValue:     {"Property Value", "Appraised Value", "PROP_VALUE"},
	FieldMHSecPropType:     {"Manufactured Home Secured Property Type", "MH Secured Property Type", "MH_PROP_TYPE"},
	FieldMHLandPropInt:     {"Manufactured Home Land Property Interest", "MH Land Property Interest", "MH_LAND_INT"},
	FieldTotalUnits:        {"Total Units", "Number of Units", "No of Units", "UNITS"},
	FieldMFAHU:             {"Multifamily Affordable Units", "MF Affordable Units", "MF_AFF_UNITS"},
	FieldAPPSubmission:     {"Submission of Application", "Application Submission", "APP_SUBMISSION"},
	FieldPayableInst:       {"Initially Payable to Your Institution", "Payable to Institution", "PAYABLE_INST"},
	FieldNMLSRID:           {"NMLS ID", "Loan Officer NMLS ID", "NMLSR ID", "LO NMLS", "NMLS_ID"},

	FieldAUSystem1:      {"Automated Underwriting System 1", "AUS 1", "AUS", "AUS_1"},
	FieldAUSystem2:      {"Automated Underwriting System 2", "AUS 2", "AUS_2"},
	FieldAUSystem3:      {"Automated Underwriting System 3", "AUS 3", "AUS_3"},
	FieldAUSystem4:      {"Automated Underwriting System 4", "AUS 4", "AUS_4"},
	FieldAUSystem5:      {"Automated Underwriting System 5", "AUS 5", "AUS_5"},
	FieldAUSystemOther:  {"Automated Underwriting System Other", "AUS Other", "AUS_OTHER"},
	FieldAUSResult1:     {"AUS Result 1", "AUS Recommendation", "AUS Decision", "AUS_RESULT_1"},
	FieldAUSResult2:     {"AUS Result 2", "AUS_RESULT_2"},
	FieldAUSResult3:     {"AUS Result 3", "AUS_RESULT_3"},
	FieldAUSResult4:     {"AUS Result 4", "AUS_RESULT_4"},
	FieldAUSResult5:     {"AUS Result 5", "AUS_RESULT_5"},
	FieldAUSResultOther: {"AUS Result Other", "AUS_RESULT_OTHER"},

	FieldREMortgage:   {"Reverse Mortgage", "REVERSE_MTG"},
	FieldOpenLOC:      {"Open-End Line of Credit", "Open End LOC", "HELOC", "OPEN_END"},
	FieldBusCml:       {"Business or Commercial Purpose", "Business Purpose", "BUS_PURPOSE"},
	FieldRateLockDate: {"Rate Lock Date", "Lock Date", "RATE_LOCK_DT"},
	FieldLoanProgram:  {"Loan Program", "Program", "Product", "LOAN_PGM"},
	FieldBranch:       {"Branch Number", "Branch #", "Branch No", "Branch Code", "BRANCH_NBR"},
	FieldBranchName:   {"Branch Name", "Branch Location", "BRANCH_NAME"},
	FieldComments:     {"Comments", "Notes"},
}

// longFormEntries lists the HMDA filing export's data-field phrasing of canonical fields.
var longFormEntries = []struct {
	name  string
	field Field
}{
	{"Legal Entity Identifier (LEI)", FieldLEI},
	{"Universal Loan Identifier (ULI)", FieldULI},
	{"Universal Loan Identifier (ULI) or Non-Universal Loan Identifier", FieldULI},
	{"Application Date", FieldApplDate},
	{"Loan Type", FieldLoanType},
	{"Loan Purpose", FieldPurpose},
	{"Preapproval", FieldPreapproval},
	{"Construction Method", FieldConstructionMethod},
	{"Occupancy Type", FieldOccupancyType},
	{"Loan Amount", FieldLoanAmount},
	{"Action Taken", FieldAction},
	{"Action Taken Date", FieldActionDate},
	{"Street Address", FieldAddress},
	{"City", FieldCity},
	{"State", FieldState},
	{"ZIP Code", FieldZip},
	{"County", FieldCounty},
	{"Census Tract", FieldTract},

	{"Ethnicity of Applicant or Borrower: 1", FieldEthnicity1},
	{"Ethnicity of Applicant or Borrower: 2", FieldEthnicity2},
	{"Ethnicity of Applicant or Borrower: 3", FieldEthnicity3},
	{"Ethnicity of Applicant or Borrower: 4", FieldEthnicity4},
	{"Ethnicity of Applicant or Borrower: 5", FieldEthnicity5},
	{"Ethnicity of Applicant or Borrower: Free Form Text Field for Other Hispanic or Latino", FieldEthnicityOther},
	{"Ethnicity of Co-Applicant or Co-Borrower: 1", FieldCoaEthnicity1},
	{"Ethnicity of Co-Applicant or Co-Borrower: 2", FieldCoaEthnicity2},
	{"Ethnicity of Co-Applicant or Co-Borrower: 3", FieldCoaEthnicity3},
	{"Ethnicity of Co-Applicant or Co-Borrower: 4", FieldCoaEthnicity4},
	{"Ethnicity of Co-Applicant or Co-Borrower: 5", FieldCoaEthnicity5},
	{"Ethnicity of Co-Applicant or Co-Borrower: Free Form Text Field for Other Hispanic or Latino", FieldCoaEthnicityOther},
	{"Ethnicity of Applicant or Borrower Collected on the Basis of Visual Observation or Surname", FieldEthnicityDeterminant},
	{"Ethnicity of Co-Applicant or Co-Borrower Collected on the Basis of Visual Observation or Surname", FieldCoaEthnicityDeterminant},

	{"Race of Applicant or Borrower: 1", FieldRace1},
	{"Race of Applicant or Borrower: 2", FieldRace2},
	{"Race of Applicant or Borrower: 3", FieldRace3},
	{"Race of Applicant or Borrower: 4", FieldRace4},
	{"Race of Applicant or Borrower: 5", FieldRace5},
	{"Race of Applicant or Borrower: Free Form Text Field for American Indian or Alaska Native Enrolled or Principal Tribe", FieldRace1Other},
	{"Race of Applicant or Borrower: Free Form Text Field for Other Asian", FieldRace27Other},
	{"Race of Applicant or Borrower: Free Form Text Field for Other Pacific Islander", FieldRace44Other},
	{"Race of Co-Applicant or Co-Borrower: 1", FieldCoaRace1},
	{"Race of Co-Applicant or Co-Borrower: 2", FieldCoaRace2},
	{"Race of Co-Applicant or Co-Borrower: 3", FieldCoaRace3},
	{"Race of Co-Applicant or Co-Borrower: 4", FieldCoaRace4},
	{"Race of Co-Applicant or Co-Borrower: 5", FieldCoaRace5},
	{"Race of Co-Applicant or Co-Borrower: Free Form Text Field for American Indian or Alaska Native Enrolled or Principal Tribe", FieldCoaRace1Other},
	{"Race of Co-Applicant or Co-Borrower: Free Form Text Field for Other Asian", FieldCoaRace27Other},
	{"Race of Co-Applicant or Co-Borrower: Free Form Text Field for Other Pacific Islander", FieldCoaRace44Other},
	{"Race of Applicant or Borrower Collected on the Basis of Visual Observation or Surname", FieldRaceDeterminant},
	{"Race of Co-Applicant or Co-Borrower Collected on the Basis of Visual Observation or Surname", FieldCoaRaceDeterminant},

	{"Sex of Applicant or Borrower", FieldSex},
	{"Sex of Co-Applicant or Co-Borrower", FieldCoaSex},
	{"Sex of Applicant or Borrower Collected on the Basis of Visual Observation or Surname", FieldSexDeterminant},
	{"Sex of Co-Applicant or Co-Borrower Collected on the Basis of Visual Observation or Surname", FieldCoaSexDeterminant},
	{"Age of Applicant or Borrower", FieldAge},
	{"Age of Co-Applicant or Co-Borrower", FieldCoaAge},

	{"Income", FieldIncome},
	{"Type of Purchaser", FieldPurchaser},
	{"Rate Spread", FieldRateSpread},
	{"HOEPA Status", FieldHOEPAStatus},
	{"Lien Status", FieldLienStatus},
	{"Credit Score of Applicant or Borrower", FieldCreditScore},
	{"Credit Score of Co-Applicant or Co-Borrower", FieldCoaCreditScore},
	{"Applicant or Borrower, Name and Version of Credit Scoring Model", FieldCreditModel},
	{"Applicant or Borrower, Name and Version of Credit Scoring Model: Conditional Free Form Text Field for Code 8", FieldCreditModelOther},
	{"Co-Applicant or Co-Borrower, Name and Version of Credit Scoring Model", FieldCoaCreditModel},
	{"Reason for Denial: 1", FieldDenial1},
	{"Reason for Denial: 2", FieldDenial2},
	{"Reason for Denial: 3", FieldDenial3},
	{"Reason for Denial: 4", FieldDenial4},
	{"Reason for Denial: Conditional Free Form Text Field for Code 9", FieldDenialOther},

	{"Total Loan Costs", FieldTotalLoanCosts},
	{"Total Points and Fees", FieldTotalPtsAndFees},
	{"Origination Charges", FieldOrigFees},
	{"Discount Points", FieldDiscountPoints},
	{"Lender Credits", FieldLenderCredits},
	{"Interest Rate", FieldInterestRate},
	{"Prepayment Penalty Term", FieldPrepaymentPenalty},
	{"Debt-to-Income Ratio", FieldDebtToIncome},
	{"Combined Loan-to-Value Ratio", FieldCLTV},
	{"Loan Term", FieldLoanTerm},
	{"Introductory Rate Period", FieldIntroRatePeriod},
	{"Balloon Payment", FieldBalloonPMT},
	{"Interest-Only Payments", FieldIOPMT},
	{"Negative Amortization", FieldNegAM},
	{"Other Non-amortizing Features", FieldNonAmortz},
	{"Property Value", FieldPropertyValue},
	{"Manufactured Home Secured Property Type", FieldMHSecPropType},
	{"Manufactured Home Land Property Interest", FieldMHLandPropInt},
	{"Total Units", FieldTotalUnits},
	{"Multifamily Affordable Units", FieldMFAHU},
	{"Submission of Application", FieldAPPSubmission},
	{"Initially Payable to Your Institution", FieldPayableInst},
	{"Mortgage Loan Originator NMLSR Identifier", FieldNMLSRID},
	{"Automated Underwriting System: 1", FieldAUSystem1},
	{"Automated Underwriting System: 2", FieldAUSystem2},
	{"Automated Underwriting System: 3", FieldAUSystem3},
	{"Automated Underwriting System: 4", FieldAUSystem4},
	{"Automated Underwriting System: 5", FieldAUSystem5},
	{"Automated Underwriting System: Conditional Free Form Text Field for Code 5", FieldAUSystemOther},
	{"Automated Underwriting System Result: 1", FieldAUSResult1},
	{"Automated Underwriting System Result: 2", FieldAUSResult2},
	{"Automated Underwriting System Result: 3", FieldAUSResult3},
	{"Automated Underwriting System Result: 4", FieldAUSResult4},
	{"Automated Underwriting System Result: 5", FieldAUSResult5},
	{"Automated Underwriting System Result: Conditional Free Form Text Field for Code 16", FieldAUSResultOther},
	{"Reverse Mortgage", FieldREMortgage},
	{"Open-End Line of Credit", FieldOpenLOC},
	{"Business or Commercial Purpose", FieldBusCml},
}

// longFormNames indexes longFormEntries by exact name.
var longFormNames map[string]Field

var (
	longFormLower map[string]Field
	aliasesLower  map[Field][]string
)

func init() {
	longFormNames = make(map[string]Field, len(longFormEntries))
	for _, e := range longFormEntries {
		if prev, dup := longFormNames[e.name]; dup && prev != e.field {
			panic(fmt.Sprintf("long-form name %q maps to both %q and %q", e.name, prev, e.field))
		}
		longFormNames[e.name] = e.field
	}

	longFormLower = make(map[string]Field, len(longFormNames))
	for name, f := range longFormNames {
		if _, ok := fieldIndex[f]; !ok {
			panic(fmt.Sprintf("long-form name %q targets unknown field %q", name, f))
		}
		key := strings.ToLower(name)
		if prev, dup := longFormLower[key]; dup && prev != f {
			panic(fmt.Sprintf("long-form name %q maps to both %q and %q", name, prev, f))
		}
		longFormLower[key] = f
	}

	// A canonical name must normalize to itself.
	for _, f := range CanonicalFields {
		if target, ok := longFormLower[strings.ToLower(string(f))]; ok && target != f {
			panic(fmt.Sprintf("canonical field %q is a long-form alias of %q", f, target))
		}
	}

	aliasesLower = make(map[Field][]string, len(fieldAliases))
	for f, names := range fieldAliases {
		if _, ok := fieldIndex[f]; !ok {
			panic(fmt.Sprintf("alias list for unknown field %q", f))
		}
		lowered := make([]string, len(names))
		for i, n := range names {
			lowered[i] = strings.ToLower(n)
		}
		aliasesLower[f] = lowered
	}
}

// Aliases returns the known source spellings for f, in lookup order.
func Aliases(f Field) []string {
	names := fieldAliases[f]
	out := make([]string, len(names))
	copy(out, names)
	return out
}

// KnownColumn reports whether name is a canonical field, a field alias,
// or a long-form name (case-insensitive). Used for header detection.
func KnownColumn(name string) bool {
	lower := strings.ToLower(strings.TrimSpace(name))
	if lower == "" {
		return false
	}
	if _, ok := longFormLower[lower]; ok {
		return true
	}
	for _, f := range CanonicalFields {
		if strings.ToLower(string(f)) == lower {
			return true
		}
		for _, a := range aliasesLower[f] {
			if a == lower {
				return true
			}
		}
	}
	for _, cols := range [][]string{borrowerNameColumns, coBorrowerNameColumns} {
		for _, c := range cols {
			if strings.ToLower(c) == lower {
				return true
			}
		}
	}
	return false
}
