package vectorstore

// Filter is a flat predicate map over metadata fields. All entries are
// implicitly conjoined (logical AND); there is no OR or NOT-of-composite
// support. An empty filter matches everything.
//
// Example:
//
//	filter := vectorstore.Filter{
//	    "status": vectorstore.In("open", "triaged"),
//	    "count":  vectorstore.Gte(5),
//	}
type Filter map[string]Condition

// Condition is the interface all filter conditions implement.
// Each store adapter converts these to its native query format.
type Condition interface {
	// isCondition is a marker method to ensure type safety
	isCondition()
}

// Equals matches records whose field equals the value exactly.
type Equals struct {
	Value any `json:"equals"`
}

func (Equals) isCondition() {}

// MemberOf matches records whose field equals any of the values (IN).
type MemberOf struct {
	Values []any `json:"memberOf"`
}

func (MemberOf) isCondition() {}

// NotEquals matches records whose field differs from the value.
type NotEquals struct {
	Value any `json:"notEquals"`
}

func (NotEquals) isCondition() {}

// GreaterThan matches field > value (exclusive). Value may be a number
// or a date representation understood by the backend.
type GreaterThan struct {
	Value any `json:"greaterThan"`
}

func (GreaterThan) isCondition() {}

// GreaterOrEqual matches field >= value (inclusive).
type GreaterOrEqual struct {
	Value any `json:"greaterOrEqual"`
}

func (GreaterOrEqual) isCondition() {}

// LessThan matches field < value (exclusive).
type LessThan struct {
	Value any `json:"lessThan"`
}

func (LessThan) isCondition() {}

// LessOrEqual matches field <= value (inclusive).
type LessOrEqual struct {
	Value any `json:"lessOrEqual"`
}

func (LessOrEqual) isCondition() {}

// Unsupported preserves an operator the contract does not recognize.
// Adapters skip it with a warning rather than failing the query path.
type Unsupported struct {
	Op    string `json:"op"`
	Value any    `json:"value"`
}

func (Unsupported) isCondition() {}

// ── Condition Constructors ───────────────────────────────────────────────────

// Eq creates an equality condition.
func Eq(value any) Equals { return Equals{Value: value} }

// In creates a membership condition.
func In(values ...any) MemberOf { return MemberOf{Values: values} }

// Ne creates a negated equality condition.
func Ne(value any) NotEquals { return NotEquals{Value: value} }

// Gt creates an exclusive lower-bound condition.
func Gt(value any) GreaterThan { return GreaterThan{Value: value} }

// Gte creates an inclusive lower-bound condition.
func Gte(value any) GreaterOrEqual { return GreaterOrEqual{Value: value} }

// Lt creates an exclusive upper-bound condition.
func Lt(value any) LessThan { return LessThan{Value: value} }

// Lte creates an inclusive upper-bound condition.
func Lte(value any) LessOrEqual { return LessOrEqual{Value: value} }
