package vectorstore

// ParseFilter converts a loosely-typed predicate map into a Filter.
// It is the validation boundary between dynamically shaped caller input
// (e.g. decoded JSON) and the tagged condition types:
//
//   - a plain literal implies equality: {"status": "open"}
//   - an operator object with exactly one recognized key becomes the
//     matching condition: {"count": {"greaterOrEqual": 5}}
//   - a list literal implies membership: {"status": ["a", "b"]}
//   - anything else is preserved as Unsupported so the adapter can skip
//     it with a warning instead of failing the query path
func ParseFilter(raw map[string]any) Filter {
	if len(raw) == 0 {
		return nil
	}

	filter := make(Filter, len(raw))
	for field, value := range raw {
		filter[field] = parseCondition(value)
	}
	return filter
}

func parseCondition(value any) Condition {
	switch v := value.(type) {
	case Condition:
		return v
	case []any:
		return MemberOf{Values: v}
	case map[string]any:
		if len(v) != 1 {
			return Unsupported{Op: "composite", Value: v}
		}
		for op, operand := range v {
			return parseOperator(op, operand)
		}
	}
	return Equals{Value: value}
}

func parseOperator(op string, operand any) Condition {
	switch op {
	case "equals":
		return Equals{Value: operand}
	case "memberOf":
		if values, ok := operand.([]any); ok {
			return MemberOf{Values: values}
		}
		return MemberOf{Values: []any{operand}}
	case "notEquals":
		return NotEquals{Value: operand}
	case "greaterThan":
		return GreaterThan{Value: operand}
	case "greaterOrEqual":
		return GreaterOrEqual{Value: operand}
	case "lessThan":
		return LessThan{Value: operand}
	case "lessOrEqual":
		return LessOrEqual{Value: operand}
	default:
		return Unsupported{Op: op, Value: operand}
	}
}
