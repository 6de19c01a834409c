package elastic

import (
	"context"
	"encoding/json"
	"io"
	"strings"
)

// Flavor identifies the cluster deployment mode. Serverless deployments
// manage storage topology themselves and expose a reduced administrative
// API surface, so several request shapes differ between the two.
type Flavor int

const (
	// FlavorUnknown means the flavor has not been determined yet.
	FlavorUnknown Flavor = iota

	// FlavorStandard is a self-managed or hosted cluster with the full
	// administrative API.
	FlavorStandard

	// FlavorServerless is the constrained serverless deployment mode.
	FlavorServerless
)

func (f Flavor) String() string {
	switch f {
	case FlavorStandard:
		return "standard"
	case FlavorServerless:
		return "serverless"
	default:
		return "unknown"
	}
}

// clusterInfo is the subset of the cluster-info response used for
// flavor classification.
type clusterInfo struct {
	Tagline string `json:"tagline"`
	Version struct {
		Number      string `json:"number"`
		BuildFlavor string `json:"build_flavor"`
	} `json:"version"`
}

// Flavor returns the deployment flavor of the connected cluster.
//
// The result is computed at most once per client instance: an explicit
// Config.Deployment short-circuits without any network call; otherwise a
// single cluster-info request classifies the cluster. Detection failure
// degrades to FlavorStandard with a warning - it must never block the
// operations that follow.
func (c *ElasticClient) Flavor(ctx context.Context) Flavor {
	c.detectOnce.Do(func() {
		if c.cfg != nil && c.cfg.Deployment != FlavorUnknown {
			c.flavor = c.cfg.Deployment
			return
		}
		c.flavor = c.detectFlavor(ctx)
	})
	return c.flavor
}

func (c *ElasticClient) detectFlavor(ctx context.Context) Flavor {
	res, err := c.api.Info(c.api.Info.WithContext(ctx))
	if err != nil {
		c.logWarn("flavor detection failed, assuming standard deployment", err, nil)
		return FlavorStandard
	}
	defer res.Body.Close()

	if res.IsError() {
		c.logWarn("flavor detection failed, assuming standard deployment", nil, map[string]interface{}{
			"status": res.Status(),
		})
		return FlavorStandard
	}

	info, err := parseClusterInfo(res.Body)
	if err != nil {
		c.logWarn("flavor detection failed, assuming standard deployment", err, nil)
		return FlavorStandard
	}

	flavor := classifyFlavor(info)
	c.logDebug("detected deployment flavor", map[string]interface{}{
		"flavor":  flavor.String(),
		"version": info.Version.Number,
	})
	return flavor
}

func parseClusterInfo(body io.Reader) (clusterInfo, error) {
	var info clusterInfo
	err := json.NewDecoder(body).Decode(&info)
	return info, err
}

// classifyFlavor inspects two independent indicators; either one marking
// the cluster as serverless is sufficient. Absence of both classifies
// the cluster as standard.
func classifyFlavor(info clusterInfo) Flavor {
	if strings.EqualFold(info.Version.BuildFlavor, "serverless") {
		return FlavorServerless
	}
	if strings.Contains(strings.ToLower(info.Tagline), "serverless") {
		return FlavorServerless
	}
	return FlavorStandard
}
