// Package catalog defines the fixed five-subject catalog. Subjects are
// defined at process start and never mutated.
package catalog

// Subject codes
const (
	CodeDSA  = "DSA"
	CodeADA  = "ADA"
	CodeDBMS = "DBMS"
	CodeJAVA = "JAVA"
	CodeOS   = "OS"
)

// MaxScorePerSubject is the maximum score for a single subject.
const MaxScorePerSubject = 100

// Subject is one catalog entry: immutable code, display name and credit weight.
type Subject struct {
	Code         string `json:"code"`
	DisplayName  string `json:"display_name"`
	CreditWeight int    `json:"credit_weight"`
}

// subjects is the closed set, in display order.
var subjects = []Subject{
	{Code: CodeDSA, DisplayName: "Data Structures & Algorithms", CreditWeight: 4},
	{Code: CodeADA, DisplayName: "Analysis & Design of Algorithms", CreditWeight: 4},
	{Code: CodeDBMS, DisplayName: "Database Management Systems", CreditWeight: 4},
	{Code: CodeJAVA, DisplayName: "Java Programming", CreditWeight: 4},
	{Code: CodeOS, DisplayName: "Operating Systems", CreditWeight: 4},
}

var byCode = func() map[string]Subject {
	m := make(map[string]Subject, len(subjects))
	for _, s := range subjects {
		m[s.Code] = s
	}
	return m
}()

// All returns every subject in display order. The slice is a copy.
func All() []Subject {
	out := make([]Subject, len(subjects))
	copy(out, subjects)
	return out
}

// Codes returns the subject codes in display order.
func Codes() []string {
	out := make([]string, len(subjects))
	for i, s := range subjects {
		out[i] = s.Code
	}
	return out
}

// ByCode looks up a subject by code.
func ByCode(code string) (Subject, bool) {
	s, ok := byCode[code]
	return s, ok
}

// IsValid reports whether code belongs to the catalog.
func IsValid(code string) bool {
	_, ok := byCode[code]
	return ok
}

// Count returns the number of subjects.
func Count() int {
	return len(subjects)
}

// MaxTotal returns the maximum achievable total across all subjects.
func MaxTotal() int {
	return len(subjects) * MaxScorePerSubject
}
