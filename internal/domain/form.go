package domain

// BookingForm holds the raw field values submitted by the widget
type BookingForm struct {
	Name     string
	Phone    string
	Email    string
	People   string
	Purposes []string
	Note     string
}

// Rule names one validation rule of the booking form
type Rule string

const (
	RuleName    Rule = "name"
	RulePhone   Rule = "phone"
	RuleEmail   Rule = "email"
	RulePeople  Rule = "people"
	RuleDate    Rule = "date"
	RulePurpose Rule = "purpose"
	RuleTime    Rule = "time"
	RuleNote    Rule = "note"
)

// Rules lists every rule in reporting order
var Rules = []Rule{RuleName, RulePhone, RuleEmail, RulePeople, RuleDate, RulePurpose, RuleTime, RuleNote}

// ValidationResult maps each rule to pass (true) or fail (false)
type ValidationResult map[Rule]bool

// Valid returns true if every evaluated rule passed
func (r ValidationResult) Valid() bool {
	for _, ok := range r {
		if !ok {
			return false
		}
	}
	return true
}

// Failed returns the failed rules in reporting order
func (r ValidationResult) Failed() []Rule {
	failed := make([]Rule, 0)
	for _, rule := range Rules {
		if ok, evaluated := r[rule]; evaluated && !ok {
			failed = append(failed, rule)
		}
	}
	return failed
}
