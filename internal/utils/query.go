package utils

import (
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Params consumed by the search and pagination stages; everything else is
// treated as a filter constraint.
var reservedParams = map[string]struct{}{
	"keyword": {},
	"page":    {},
	"limit":   {},
}

var rangeOperators = map[string]string{
	"gt":  "$gt",
	"gte": "$gte",
	"lt":  "$lt",
	"lte": "$lte",
}

// ProductQuery composes a filtered, searched, paginated read query against
// the product collection from raw request parameters. Stages mutate and
// return the same builder so callers chain Search().Filter().Paginate().
type ProductQuery struct {
	params   map[string]string
	criteria bson.M
	opts     *options.FindOptions
}

// NewProductQuery starts a builder over the request query parameters.
func NewProductQuery(params map[string]string) *ProductQuery {
	return &ProductQuery{
		params:   params,
		criteria: bson.M{},
		opts:     options.Find(),
	}
}

// Search restricts to products whose name matches the keyword parameter
// case-insensitively. No keyword, no restriction.
func (q *ProductQuery) Search() *ProductQuery {
	if keyword := q.params["keyword"]; keyword != "" {
		q.criteria["name"] = bson.M{"$regex": keyword, "$options": "i"}
	}
	return q
}

// Filter turns every remaining parameter into a constraint. Bare range
// tokens written as field[gt|gte|lt|lte]=value are rewritten into the
// store's $-operator syntax; any other field passes through as an equality
// filter verbatim, without schema validation.
func (q *ProductQuery) Filter() *ProductQuery {
	for key, value := range q.params {
		if _, reserved := reservedParams[key]; reserved {
			continue
		}

		if field, op, ok := splitRangeParam(key); ok {
			constraint, exists := q.criteria[field].(bson.M)
			if !exists {
				constraint = bson.M{}
				q.criteria[field] = constraint
			}
			constraint[op] = coerceValue(value)
			continue
		}

		q.criteria[key] = coerceValue(value)
	}
	return q
}

// Paginate bounds the result set to one page of perPage items, with the
// page parameter defaulting to 1.
func (q *ProductQuery) Paginate(perPage int) *ProductQuery {
	page := 1
	if parsed, err := strconv.Atoi(q.params["page"]); err == nil && parsed > 0 {
		page = parsed
	}

	q.opts.SetSkip(int64(perPage * (page - 1)))
	q.opts.SetLimit(int64(perPage))
	return q
}

// Criteria returns the composed filter document.
func (q *ProductQuery) Criteria() bson.M {
	return q.criteria
}

// Options returns the composed find options.
func (q *ProductQuery) Options() *options.FindOptions {
	return q.opts
}

// splitRangeParam decomposes "price[gte]" into ("price", "$gte", true).
func splitRangeParam(key string) (field, op string, ok bool) {
	open := strings.Index(key, "[")
	if open <= 0 || !strings.HasSuffix(key, "]") {
		return "", "", false
	}

	mongoOp, known := rangeOperators[key[open+1:len(key)-1]]
	if !known {
		return "", "", false
	}
	return key[:open], mongoOp, true
}

// coerceValue parses numerals and booleans so comparison operators work on
// the stored types. The document store does not cast strings the way a
// schema layer would.
func coerceValue(value string) interface{} {
	if f, err := strconv.ParseFloat(value, 64); err == nil {
		return f
	}
	if b, err := strconv.ParseBool(value); err == nil {
		return b
	}
	return value
}
