// Package query turns list query parameters into a validated Mongo filter,
// sort order and page window. Every list endpoint goes through a Spec.
package query

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"hugox-backend/apperror"
)

const (
	// MaxLimit caps the page size of every list endpoint.
	MaxLimit = 100
	// MaxSearch is the longest accepted search term.
	MaxSearch = 100
)

// Kind selects how a filter parameter is parsed.
type Kind int

const (
	Enum Kind = iota
	ObjectID
	Bool
	Int
	Pattern
)

// Field maps a query parameter onto a document key.
type Field struct {
	Param string
	Key   string
	Kind  Kind
	// Values is the closed set accepted by Enum fields.
	Values []string
	// Min and Max bound Int fields.
	Min, Max int
	// Default is applied when the parameter is absent.
	Default string
}

// Spec describes what one list endpoint accepts.
type Spec struct {
	Search       []string
	Fields       []Field
	PriceKey     string
	DefaultLimit int
	DefaultSort  string
	Sorts        []string
	Fixed        bson.M
}

// Query is a validated list request.
type Query struct {
	Page   int
	Limit  int
	Filter bson.M
	Sort   bson.D
	// Text is set for ranked full-text queries.
	Text string
}

// Skip is the number of documents before the page.
func (q *Query) Skip() int64 {
	return int64(q.Page-1) * int64(q.Limit)
}

// FindOptions returns the sort and window for Find. Ranked queries without
// an explicit sort are ordered by text score.
func (q *Query) FindOptions() *options.FindOptions {
	opts := options.Find().SetSkip(q.Skip()).SetLimit(int64(q.Limit))
	if q.Text != "" {
		score := bson.M{"$meta": "textScore"}
		opts.SetProjection(bson.M{"score": score})
		if len(q.Sort) == 0 {
			opts.SetSort(bson.D{{Key: "score", Value: score}})
			return opts
		}
	}
	if len(q.Sort) > 0 {
		opts.SetSort(q.Sort)
	}
	return opts
}

// Parse validates values against the spec. Any invalid parameter rejects
// the whole request.
func (s Spec) Parse(values url.Values) (*Query, error) {
	q := &Query{Filter: bson.M{}}
	var err error
	if q.Page, err = positive(values, "page", 1, 0); err != nil {
		return nil, err
	}
	def := s.DefaultLimit
	if def == 0 {
		def = 12
	}
	if q.Limit, err = positive(values, "limit", def, MaxLimit); err != nil {
		return nil, err
	}

	for k, v := range s.Fixed {
		q.Filter[k] = v
	}
	for _, f := range s.Fields {
		if err := f.apply(values, q.Filter); err != nil {
			return nil, err
		}
	}
	if s.PriceKey != "" {
		if err := priceRange(values, s.PriceKey, q.Filter); err != nil {
			return nil, err
		}
	}
	if term, ok, err := searchTerm(values, "search", false); err != nil {
		return nil, err
	} else if ok && len(s.Search) > 0 {
		q.Filter["$or"] = Contains(term, s.Search...)
	}

	sortParam := values.Get("sort")
	if sortParam == "" {
		sortParam = s.DefaultSort
	}
	if q.Sort, err = s.sort(sortParam); err != nil {
		return nil, err
	}
	return q, nil
}

// ParseText validates a ranked search request. The term comes from "q" and
// is required. Without an explicit sort results are ordered by relevance.
func (s Spec) ParseText(values url.Values) (*Query, error) {
	term, _, err := searchTerm(values, "q", true)
	if err != nil {
		return nil, err
	}
	rest := url.Values{}
	for k, v := range values {
		if k != "search" && k != "sort" {
			rest[k] = v
		}
	}
	s.DefaultSort = ""
	q, err := s.Parse(rest)
	if err != nil {
		return nil, err
	}
	if q.Sort, err = s.sort(values.Get("sort")); err != nil {
		return nil, err
	}
	q.Text = term
	q.Filter["$text"] = bson.M{"$search": term}
	return q, nil
}

// Contains builds the case-insensitive substring match of term against
// every key, for use under $or. term is matched literally.
func Contains(term string, keys ...string) bson.A {
	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(term), Options: "i"}
	or := make(bson.A, len(keys))
	for i, k := range keys {
		or[i] = bson.M{k: pattern}
	}
	return or
}

// Term reads and validates a required search term from param.
func Term(values url.Values, param string) (string, error) {
	term, _, err := searchTerm(values, param, true)
	return term, err
}

func searchTerm(values url.Values, param string, required bool) (string, bool, error) {
	term := strings.TrimSpace(values.Get(param))
	if term == "" {
		if required {
			return "", false, apperror.Validation(param, "Search query is required")
		}
		return "", false, nil
	}
	if utf8.RuneCountInString(term) > MaxSearch {
		return "", false, apperror.Validation(param, fmt.Sprintf("%s must be between 1 and %d characters", param, MaxSearch))
	}
	return term, true, nil
}

func positive(values url.Values, param string, def, max int) (int, error) {
	raw := values.Get(param)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, apperror.Validation(param, param+" must be a positive integer")
	}
	if max > 0 && n > max {
		return 0, apperror.Validation(param, fmt.Sprintf("%s must be between 1 and %d", param, max))
	}
	return n, nil
}

func priceRange(values url.Values, key string, filter bson.M) error {
	bounds := bson.M{}
	var lo, hi float64
	for _, p := range []struct {
		param string
		op    string
		dst   *float64
	}{{"minPrice", "$gte", &lo}, {"maxPrice", "$lte", &hi}} {
		raw := values.Get(p.param)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 {
			return apperror.Validation(p.param, p.param+" must be a non-negative number")
		}
		*p.dst = v
		bounds[p.op] = v
	}
	if _, ok := bounds["$gte"]; ok {
		if _, ok := bounds["$lte"]; ok && lo > hi {
			return apperror.Validation("minPrice", "minPrice cannot be greater than maxPrice")
		}
	}
	if len(bounds) > 0 {
		filter[key] = bounds
	}
	return nil
}

func (f Field) apply(values url.Values, filter bson.M) error {
	raw := strings.TrimSpace(values.Get(f.Param))
	if raw == "" {
		raw = f.Default
	}
	if raw == "" {
		return nil
	}
	key := f.Key
	if key == "" {
		key = f.Param
	}
	switch f.Kind {
	case Enum:
		for _, v := range f.Values {
			if v == raw {
				filter[key] = raw
				return nil
			}
		}
		return apperror.Validation(f.Param, fmt.Sprintf("%s must be one of: %s", f.Param, strings.Join(f.Values, ", ")))
	case ObjectID:
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			return apperror.Validation(f.Param, "Invalid "+f.Param+" ID")
		}
		filter[key] = id
	case Bool:
		if raw != "true" && raw != "false" {
			return apperror.Validation(f.Param, f.Param+" must be true or false")
		}
		filter[key] = raw == "true"
	case Int:
		n, err := strconv.Atoi(raw)
		if err != nil || n < f.Min || n > f.Max {
			return apperror.Validation(f.Param, fmt.Sprintf("%s must be an integer between %d and %d", f.Param, f.Min, f.Max))
		}
		filter[key] = n
	case Pattern:
		if utf8.RuneCountInString(raw) > MaxSearch {
			return apperror.Validation(f.Param, fmt.Sprintf("%s must be between 1 and %d characters", f.Param, MaxSearch))
		}
		filter[key] = primitive.Regex{Pattern: regexp.QuoteMeta(raw), Options: "i"}
	}
	return nil
}

// sort parses "-createdAt", "price" or "sortOrder name" into a bson.D.
func (s Spec) sort(raw string) (bson.D, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	var out bson.D
	for _, tok := range strings.FieldsFunc(raw, func(r rune) bool { return r == ' ' || r == ',' }) {
		dir := 1
		name := tok
		if strings.HasPrefix(tok, "-") {
			dir, name = -1, tok[1:]
		} else if strings.HasPrefix(tok, "+") {
			name = tok[1:]
		}
		if !allowed(s.Sorts, name) {
			return nil, apperror.Validation("sort", fmt.Sprintf("sort must use one of: %s", strings.Join(s.Sorts, ", ")))
		}
		out = append(out, bson.E{Key: name, Value: dir})
	}
	return out, nil
}

func allowed(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
