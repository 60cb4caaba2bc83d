package types

import "github.com/samber/lo"

// CompanySize is the coarse employee/revenue bucket of a business
type CompanySize string

const (
	// CompanySizeMicro covers fewer than 10 employees
	CompanySizeMicro CompanySize = "micro"
	// CompanySizeSmall covers 10 to 49 employees
	CompanySizeSmall CompanySize = "small"
	// CompanySizeMedium covers 50 to 249 employees
	CompanySizeMedium CompanySize = "medium"
	// CompanySizeLarge covers 250 employees and more
	CompanySizeLarge CompanySize = "large"
)

// CompanySizes lists every company size from smallest to largest
var CompanySizes = []CompanySize{CompanySizeMicro, CompanySizeSmall, CompanySizeMedium, CompanySizeLarge}

// Valid reports whether the size is one of the known buckets
func (s CompanySize) Valid() bool {
	return lo.Contains(CompanySizes, s)
}

// AtLeast reports whether s is the same bucket as min or a larger one.
// Unknown sizes never meet a threshold.
func (s CompanySize) AtLeast(min CompanySize) bool {
	have := lo.IndexOf(CompanySizes, s)
	want := lo.IndexOf(CompanySizes, min)

	return have >= 0 && want >= 0 && have >= want
}

// Sector is an industry tag
type Sector string

const (
	SectorIT            Sector = "it"
	SectorFinance       Sector = "finance"
	SectorHealth        Sector = "health"
	SectorEnergy        Sector = "energy"
	SectorManufacturing Sector = "manufacturing"
	SectorTransport     Sector = "transport"
	SectorRetail        Sector = "retail"
	SectorTelecom       Sector = "telecom"
	SectorPublic        Sector = "public"
	SectorOther         Sector = "other"
)

// Sectors lists every known sector
var Sectors = []Sector{
	SectorIT, SectorFinance, SectorHealth, SectorEnergy, SectorManufacturing,
	SectorTransport, SectorRetail, SectorTelecom, SectorPublic, SectorOther,
}

// Valid reports whether the sector is known
func (s Sector) Valid() bool {
	return lo.Contains(Sectors, s)
}

// DataType is a category of data the business processes
type DataType string

const (
	DataTypePersonal  DataType = "personal"
	DataTypeSensitive DataType = "sensitive"
	DataTypeChildren  DataType = "children"
	DataTypeFinancial DataType = "financial"
	DataTypeB2B       DataType = "b2b"
	DataTypeIoT       DataType = "iot"
)

// DataTypes lists every known data category
var DataTypes = []DataType{
	DataTypePersonal, DataTypeSensitive, DataTypeChildren, DataTypeFinancial, DataTypeB2B, DataTypeIoT,
}

// Valid reports whether the data type is known
func (d DataType) Valid() bool {
	return lo.Contains(DataTypes, d)
}

// Activity is a business activity tag
type Activity string

const (
	ActivityAI             Activity = "ai"
	ActivitySoftware       Activity = "software"
	ActivityCriticalInfra  Activity = "critical-infra"
	ActivityOnlinePlatform Activity = "online-platform"
	ActivityESG            Activity = "esg"
	ActivityCrypto         Activity = "crypto"
	ActivityCrossBorder    Activity = "cross-border"
	ActivityEcommerce      Activity = "ecommerce"
	ActivityEID            Activity = "eid"
)

// Activities lists every known activity
var Activities = []Activity{
	ActivityAI, ActivitySoftware, ActivityCriticalInfra, ActivityOnlinePlatform, ActivityESG,
	ActivityCrypto, ActivityCrossBorder, ActivityEcommerce, ActivityEID,
}

// Valid reports whether the activity is known
func (a Activity) Valid() bool {
	return lo.Contains(Activities, a)
}

// Location is a jurisdiction tag
type Location string

const (
	LocationAT    Location = "at"
	LocationDE    Location = "de"
	LocationEU    Location = "eu"
	LocationNonEU Location = "non-eu"
)

// Locations lists every known jurisdiction
var Locations = []Location{LocationAT, LocationDE, LocationEU, LocationNonEU}

// Valid reports whether the location is known
func (l Location) Valid() bool {
	return lo.Contains(Locations, l)
}

// RevenueBucket is a coarse annual revenue range; the empty value means unknown
type RevenueBucket string

const (
	RevenueUnknown RevenueBucket = ""
	RevenueUnder2M RevenueBucket = "<2M"
	Revenue2To10M  RevenueBucket = "2-10M"
	Revenue10To50M RevenueBucket = "10-50M"
	RevenueOver50M RevenueBucket = ">50M"
)

// RevenueBuckets lists every known bucket from lowest to highest
var RevenueBuckets = []RevenueBucket{RevenueUnder2M, Revenue2To10M, Revenue10To50M, RevenueOver50M}

// Valid reports whether the bucket is known or deliberately left empty
func (r RevenueBucket) Valid() bool {
	return r == RevenueUnknown || lo.Contains(RevenueBuckets, r)
}

// MaturityLevel is the degree of existing compliance infrastructure
type MaturityLevel string

const (
	MaturityNone     MaturityLevel = "none"
	MaturityBasic    MaturityLevel = "basic"
	MaturityAdvanced MaturityLevel = "advanced"
)

// MaturityLevels lists every known maturity level
var MaturityLevels = []MaturityLevel{MaturityNone, MaturityBasic, MaturityAdvanced}

// Valid reports whether the maturity level is known
func (m MaturityLevel) Valid() bool {
	return lo.Contains(MaturityLevels, m)
}

// BusinessProfile describes the business an evaluation is run for. All set
// fields may be empty; evaluators treat an empty set as matching nothing.
type BusinessProfile struct {
	// CompanySize is the employee/revenue bucket
	CompanySize CompanySize `json:"companySize" yaml:"companySize"`
	// Sectors are the industries the business operates in
	Sectors []Sector `json:"sectors" yaml:"sectors"`
	// DataTypes are the categories of data processed
	DataTypes []DataType `json:"dataTypes" yaml:"dataTypes"`
	// Activities are the regulated activities the business performs
	Activities []Activity `json:"activities" yaml:"activities"`
	// Locations are the jurisdictions the business operates in
	Locations []Location `json:"locations" yaml:"locations"`
	// AnnualRevenue is the revenue bucket, empty when unknown
	AnnualRevenue RevenueBucket `json:"annualRevenue,omitempty" yaml:"annualRevenue,omitempty"`
}

// HasSector reports whether any of the given sectors is in the profile
func (p BusinessProfile) HasSector(sectors ...Sector) bool {
	return lo.Some(p.Sectors, sectors)
}

// HasDataType reports whether any of the given data types is in the profile
func (p BusinessProfile) HasDataType(dataTypes ...DataType) bool {
	return lo.Some(p.DataTypes, dataTypes)
}

// HasActivity reports whether any of the given activities is in the profile
func (p BusinessProfile) HasActivity(activities ...Activity) bool {
	return lo.Some(p.Activities, activities)
}

// HasLocation reports whether any of the given locations is in the profile
func (p BusinessProfile) HasLocation(locations ...Location) bool {
	return lo.Some(p.Locations, locations)
}

// Clone returns a deep copy so callers can hand the profile on without sharing slices
func (p BusinessProfile) Clone() BusinessProfile {
	out := p
	out.Sectors = append([]Sector(nil), p.Sectors...)
	out.DataTypes = append([]DataType(nil), p.DataTypes...)
	out.Activities = append([]Activity(nil), p.Activities...)
	out.Locations = append([]Location(nil), p.Locations...)

	return out
}
