package localize

// LabelID identifies a localizable display string. The set is closed: every
// identifier declared here has an English entry, and identifiers outside the
// set are rejected when decoding schemas.
type LabelID string

// Identifiers referenced from form spec documents via `translation_id`.
const (
	LabelNameOnAccount LabelID = "upe.labels.name.onAccount"
	LabelIDEALBank     LabelID = "upe.labels.ideal.bank"
	LabelEPSBank       LabelID = "upe.labels.eps.bank"
	LabelP24Bank       LabelID = "upe.labels.p24.bank"
	LabelFPXBank       LabelID = "upe.labels.fpx.bank"
)

// Identifiers used by built-in elements.
const (
	LabelName          LabelID = "payform.labels.name"
	LabelEmail         LabelID = "payform.labels.email"
	LabelCountry       LabelID = "payform.labels.country"
	LabelCountryRegion LabelID = "payform.labels.countryOrRegion"
	LabelLine1         LabelID = "payform.labels.address.line1"
	LabelLine2         LabelID = "payform.labels.address.line2"
	LabelIBAN          LabelID = "payform.labels.iban"
	LabelBSBNumber     LabelID = "payform.labels.becs.bsb"
	LabelAccountNumber LabelID = "payform.labels.becs.account"

	LabelAffirmHeader   LabelID = "payform.headers.affirm"
	LabelKlarnaHeader   LabelID = "payform.headers.klarna"
	LabelAfterpayHeader LabelID = "payform.headers.afterpay"
	LabelBECSMandate    LabelID = "payform.mandates.becs"
	LabelSEPAMandate    LabelID = "payform.mandates.sepa"
)

// City, state and postal code naming varies by country.
const (
	LabelCity     LabelID = "payform.labels.address.city"
	LabelDistrict LabelID = "payform.labels.address.district"
	LabelSuburb   LabelID = "payform.labels.address.suburb"
	LabelPostTown LabelID = "payform.labels.address.postTown"
	LabelTown     LabelID = "payform.labels.address.town"

	LabelState      LabelID = "payform.labels.address.state"
	LabelProvince   LabelID = "payform.labels.address.province"
	LabelCounty     LabelID = "payform.labels.address.county"
	LabelPrefecture LabelID = "payform.labels.address.prefecture"
	LabelArea       LabelID = "payform.labels.address.area"
	LabelDepartment LabelID = "payform.labels.address.department"
	LabelEmirate    LabelID = "payform.labels.address.emirate"
	LabelIsland     LabelID = "payform.labels.address.island"
	LabelRegion     LabelID = "payform.labels.address.region"

	LabelZIP        LabelID = "payform.labels.address.zip"
	LabelPostalCode LabelID = "payform.labels.address.postalCode"
	LabelPIN        LabelID = "payform.labels.address.pin"
	LabelEircode    LabelID = "payform.labels.address.eircode"
)

var english = map[LabelID]string{
	LabelNameOnAccount: "Name on account",
	LabelIDEALBank:     "iDEAL Bank",
	LabelEPSBank:       "EPS Bank",
	LabelP24Bank:       "Przelewy24 Bank",
	LabelFPXBank:       "FPX Bank",

	LabelName:          "Full name",
	LabelEmail:         "Email",
	LabelCountry:       "Country",
	LabelCountryRegion: "Country or region",
	LabelLine1:         "Address line 1",
	LabelLine2:         "Address line 2",
	LabelIBAN:          "IBAN",
	LabelBSBNumber:     "BSB number",
	LabelAccountNumber: "Account number",

	LabelAffirmHeader:   "Pay over time with Affirm",
	LabelKlarnaHeader:   "Buy now or pay later with Klarna",
	LabelAfterpayHeader: "Pay in 4 interest-free payments with Afterpay",
	LabelBECSMandate:    "By providing your bank account details and confirming this payment, you agree to this Direct Debit Request and the Direct Debit Request service agreement, and authorise %s to debit your account through the Bulk Electronic Clearing System (BECS).",
	LabelSEPAMandate:    "By providing your payment information and confirming this payment, you authorise %s to send instructions to your bank to debit your account in accordance with those instructions.",

	LabelCity:     "City",
	LabelDistrict: "District",
	LabelSuburb:   "Suburb",
	LabelPostTown: "Town or city",
	LabelTown:     "Town",

	LabelState:      "State",
	LabelProvince:   "Province",
	LabelCounty:     "County",
	LabelPrefecture: "Prefecture",
	LabelArea:       "Area",
	LabelDepartment: "Department",
	LabelEmirate:    "Emirate",
	LabelIsland:     "Island",
	LabelRegion:     "Region",

	LabelZIP:        "ZIP",
	LabelPostalCode: "Postal code",
	LabelPIN:        "PIN",
	LabelEircode:    "Eircode",
}

// ParseLabelID maps a wire identifier onto the closed LabelID set.
func ParseLabelID(raw string) (LabelID, bool) {
	id := LabelID(raw)
	if _, ok := english[id]; !ok {
		return "", false
	}
	return id, true
}

// Labels returns every declared identifier.
func Labels() []LabelID {
	out := make([]LabelID, 0, len(english))
	for id := range english {
		out = append(out, id)
	}
	return out
}

// English returns the built-in English string for id.
func English(id LabelID) (string, bool) {
	msg, ok := english[id]
	return msg, ok
}
