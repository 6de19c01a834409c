package elastic

import (
	"strings"

	"github.com/recallio/std/v1/vectorstore"
)

// Similarity identifiers accepted by the dense_vector field type.
const (
	similarityCosine     = "cosine"
	similarityL2Norm     = "l2_norm"
	similarityDotProduct = "dot_product"
)

var metricToSimilarity = map[vectorstore.Metric]string{
	vectorstore.Cosine:     similarityCosine,
	vectorstore.Euclidean:  similarityL2Norm,
	vectorstore.DotProduct: similarityDotProduct,
}

var similarityToMetric = map[string]vectorstore.Metric{
	similarityCosine:     vectorstore.Cosine,
	similarityL2Norm:     vectorstore.Euclidean,
	similarityDotProduct: vectorstore.DotProduct,
}

// similarityFor maps a generic metric name to the backend similarity
// identifier. Case-insensitive; unknown metrics report ok=false.
func similarityFor(metric vectorstore.Metric) (string, bool) {
	normalized, ok := vectorstore.ParseMetric(string(metric))
	if !ok {
		return "", false
	}
	similarity, ok := metricToSimilarity[normalized]
	return similarity, ok
}

// metricFor reverse-maps a backend similarity identifier to the generic
// metric. Unknown identifiers report ok=false.
func metricFor(similarity string) (vectorstore.Metric, bool) {
	metric, ok := similarityToMetric[strings.ToLower(strings.TrimSpace(similarity))]
	return metric, ok
}

// resolveSimilarity maps a metric for index creation. An unknown metric
// falls back to cosine with a warning rather than failing the call.
func (c *ElasticClient) resolveSimilarity(metric vectorstore.Metric) string {
	if similarity, ok := similarityFor(metric); ok {
		return similarity
	}
	c.logWarn("unknown similarity metric, defaulting to cosine", nil, map[string]interface{}{
		"metric": string(metric),
	})
	return similarityCosine
}

// resolveMetric reverse-maps a similarity identifier read from an index
// mapping. Unmapped values (including ones a future backend version may
// introduce) default to cosine so describe never fails on them.
func (c *ElasticClient) resolveMetric(similarity string) vectorstore.Metric {
	if metric, ok := metricFor(similarity); ok {
		return metric
	}
	c.logWarn("unknown backend similarity, defaulting to cosine", nil, map[string]interface{}{
		"similarity": similarity,
	})
	return vectorstore.Cosine
}
