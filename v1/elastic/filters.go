package elastic

import (
	"sort"

	"github.com/recallio/std/v1/vectorstore"
)

// metadataField is the mapping field holding caller metadata. Filter
// fields are addressed relative to it.
const metadataField = "metadata"

// keywordPath returns the exact-match representation of a metadata
// field. Equality-style operators must target it so that text analysis
// does not tokenize values and alter match semantics.
func keywordPath(field string) string {
	return metadataField + "." + field + ".keyword"
}

// rawPath returns the raw numeric/date representation of a metadata
// field, targeted by range operators.
func rawPath(field string) string {
	return metadataField + "." + field
}

// buildFilter compiles a generic predicate map into a bool query in
// filter context. All leaves are conjoined. Unsupported operators are
// skipped with a warning - a non-matching filter must never take down
// the query path. An empty or fully-skipped filter compiles to nil,
// meaning "no filter" rather than "match nothing".
//
// Fields are processed in sorted order so the produced query is
// deterministic.
func (c *ElasticClient) buildFilter(filter vectorstore.Filter) map[string]any {
	if len(filter) == 0 {
		return nil
	}

	fields := make([]string, 0, len(filter))
	for field := range filter {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	var must []any
	var mustNot []any

	for _, field := range fields {
		switch cond := filter[field].(type) {
		case vectorstore.Equals:
			must = append(must, termClause(keywordPath(field), cond.Value))
		case vectorstore.MemberOf:
			must = append(must, map[string]any{
				"terms": map[string]any{keywordPath(field): cond.Values},
			})
		case vectorstore.NotEquals:
			mustNot = append(mustNot, termClause(keywordPath(field), cond.Value))
		case vectorstore.GreaterThan:
			must = append(must, rangeClause(field, "gt", cond.Value))
		case vectorstore.GreaterOrEqual:
			must = append(must, rangeClause(field, "gte", cond.Value))
		case vectorstore.LessThan:
			must = append(must, rangeClause(field, "lt", cond.Value))
		case vectorstore.LessOrEqual:
			must = append(must, rangeClause(field, "lte", cond.Value))
		case vectorstore.Unsupported:
			c.logWarn("skipping unsupported filter operator", nil, map[string]interface{}{
				"field":    field,
				"operator": cond.Op,
			})
		default:
			c.logWarn("skipping unrecognized filter condition", nil, map[string]interface{}{
				"field": field,
			})
		}
	}

	if len(must) == 0 && len(mustNot) == 0 {
		return nil
	}

	boolQuery := map[string]any{}
	if len(must) > 0 {
		boolQuery["filter"] = must
	}
	if len(mustNot) > 0 {
		boolQuery["must_not"] = mustNot
	}
	return map[string]any{"bool": boolQuery}
}

func termClause(path string, value any) map[string]any {
	return map[string]any{
		"term": map[string]any{path: value},
	}
}

func rangeClause(field, op string, value any) map[string]any {
	return map[string]any{
		"range": map[string]any{
			rawPath(field): map[string]any{op: value},
		},
	}
}
