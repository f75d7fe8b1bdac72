package benchmark

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"regexp"
	"strings"

	"github.com/puzpuzpuz/xsync/v4"

	"github.com/goodnatureofminers/blockinsight7000-validator/internal/model"
)

// ErrQueryRejected is returned for queries outside the allow-listed shapes.
var ErrQueryRejected = errors.New("benchmark query rejected")

const queryParts = 8

var networkPattern = regexp.MustCompile(`^[a-z0-9_]+$`)

var queryPrefixes = map[model.ModelType]string{
	model.FundsFlow:       "SELECT toString(uniqExact(address)) AS result FROM graph_edges FINAL WHERE network = '%s' AND (%s)",
	model.BalanceTracking: "SELECT toString(sum(out_total)) AS result FROM graph_transactions FINAL WHERE network = '%s' AND (%s)",
}

var rangeClause = `block_height BETWEEN \d+ AND \d+`

// QueryBuilder constructs benchmark queries from typed parameters.
type QueryBuilder struct {
	randN func(n uint64) uint64
}

// NewQueryBuilder returns a builder drawing sub-ranges from the global source.
func NewQueryBuilder() *QueryBuilder {
	return &QueryBuilder{randN: rand.Uint64N}
}

// Build splits [start, end] in eight parts and picks a window of diff+1
// heights inside each one. The result is revalidated before it is returned.
func (b *QueryBuilder) Build(modelType model.ModelType, network model.Network, start, end, diff uint64) (string, error) {
	format, ok := queryPrefixes[modelType]
	if !ok {
		return "", fmt.Errorf("%w: unknown model type %q", ErrQueryRejected, modelType)
	}
	if !networkPattern.MatchString(string(network)) {
		return "", fmt.Errorf("%w: network %q", ErrQueryRejected, network)
	}
	if start > end {
		return "", fmt.Errorf("%w: range [%d, %d]", ErrQueryRejected, start, end)
	}

	clauses := make([]string, 0, queryParts)
	for _, r := range b.subRanges(start, end, diff) {
		clauses = append(clauses, fmt.Sprintf("block_height BETWEEN %d AND %d", r.Start, r.End))
	}
	query := fmt.Sprintf(format, network, strings.Join(clauses, " OR "))
	if err := ValidateQuery(network, modelType, query); err != nil {
		return "", err
	}
	return query, nil
}

func (b *QueryBuilder) subRanges(start, end, diff uint64) []model.BlockRange {
	part := (end - start) / queryParts
	out := make([]model.BlockRange, 0, queryParts)
	for i := uint64(0); i < queryParts; i++ {
		partStart := start + i*part
		partEnd := end
		if i < queryParts-1 {
			partEnd = start + (i+1)*part
			if partEnd > partStart {
				partEnd--
			}
		}

		subStart := partStart
		if partEnd > partStart && partEnd-partStart > diff {
			subStart = partStart + b.randN(partEnd-partStart-diff+1)
		}
		subEnd := subStart + diff
		if subEnd > end || subEnd < subStart {
			subEnd = end
		}
		out = append(out, model.BlockRange{Start: subStart, End: subEnd})
	}
	return out
}

var patterns = xsync.NewMap[string, *regexp.Regexp]()

// ValidateQuery checks query against the allow-listed shape for network and
// model type. Peers run it before executing a benchmark query.
func ValidateQuery(network model.Network, modelType model.ModelType, query string) error {
	re, err := patternFor(network, modelType)
	if err != nil {
		return err
	}
	if !re.MatchString(query) {
		return fmt.Errorf("%w: %s query for %s does not match the allow-list", ErrQueryRejected, modelType, network)
	}
	return nil
}

func patternFor(network model.Network, modelType model.ModelType) (*regexp.Regexp, error) {
	format, ok := queryPrefixes[modelType]
	if !ok {
		return nil, fmt.Errorf("%w: unknown model type %q", ErrQueryRejected, modelType)
	}
	if !networkPattern.MatchString(string(network)) {
		return nil, fmt.Errorf("%w: network %q", ErrQueryRejected, network)
	}

	key := string(network) + "/" + string(modelType)
	if re, ok := patterns.Load(key); ok {
		return re, nil
	}

	ranges := rangeClause + strings.Repeat(" OR "+rangeClause, queryParts-1)
	quoted := regexp.QuoteMeta(fmt.Sprintf(format, network, "\x00"))
	re := regexp.MustCompile("^" + strings.Replace(quoted, "\x00", ranges, 1) + "$")
	actual, _ := patterns.LoadOrStore(key, re)
	return actual, nil
}
