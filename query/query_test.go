package query

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"hugox-backend/apperror"
	"hugox-backend/models"
)

func values(s string) url.Values {
	v, err := url.ParseQuery(s)
	if err != nil {
		panic(err)
	}
	return v
}

func TestParseDefaults(t *testing.T) {
	q, err := PublicProducts.Parse(url.Values{})
	require.NoError(t, err)
	assert.Equal(t, 1, q.Page)
	assert.Equal(t, 12, q.Limit)
	assert.Equal(t, int64(0), q.Skip())
	assert.Equal(t, bson.M{"status": "active"}, q.Filter)
	assert.Equal(t, bson.D{{Key: "createdAt", Value: -1}}, q.Sort)
}

func TestParsePriceWindow(t *testing.T) {
	q, err := PublicProducts.Parse(values("status=active&minPrice=100000&maxPrice=500000&page=2&limit=2"))
	require.NoError(t, err)
	assert.Equal(t, int64(2), q.Skip())
	assert.Equal(t, bson.M{"$gte": 100000.0, "$lte": 500000.0}, q.Filter["price"])
	assert.Equal(t, "active", q.Filter["status"])
}

func TestPublicProductsHideDrafts(t *testing.T) {
	_, err := PublicProducts.Parse(values("status=draft"))
	ae, ok := apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, "status", ae.Field)
}

func TestParseRejectsInvalidInput(t *testing.T) {
	cases := map[string]string{
		"page=0":                    "page",
		"page=abc":                  "page",
		"limit=101":                 "limit",
		"limit=-5":                  "limit",
		"category=xyz":              "category",
		"featured=yes":              "featured",
		"minPrice=-1":               "minPrice",
		"minPrice=500&maxPrice=100": "minPrice",
		"sort=password":             "sort",
	}
	for raw, field := range cases {
		_, err := PublicProducts.Parse(values(raw))
		ae, ok := apperror.As(err)
		require.True(t, ok, raw)
		assert.Equal(t, apperror.KindValidation, ae.Kind, raw)
		assert.Equal(t, field, ae.Field, raw)
	}
}

func TestSearchIsEscaped(t *testing.T) {
	q, err := AdminProducts.Parse(values("search=" + url.QueryEscape("a+b (x)")))
	require.NoError(t, err)
	or, ok := q.Filter["$or"].(bson.A)
	require.True(t, ok)
	require.Len(t, or, 3)
	assert.Equal(t, bson.M{"name": primitive.Regex{Pattern: `a\+b \(x\)`, Options: "i"}}, or[0])
	assert.Equal(t, bson.M{"sku": primitive.Regex{Pattern: `a\+b \(x\)`, Options: "i"}}, or[2])
}

func TestSearchTooLong(t *testing.T) {
	long := make([]byte, MaxSearch+1)
	for i := range long {
		long[i] = 'a'
	}
	_, err := AdminUsers.Parse(url.Values{"search": {string(long)}})
	assert.True(t, apperror.Is(err, apperror.KindValidation))
}

func TestCompoundCategorySort(t *testing.T) {
	q, err := AdminCategories.Parse(url.Values{})
	require.NoError(t, err)
	assert.Equal(t, 50, q.Limit)
	assert.Equal(t, bson.D{{Key: "sortOrder", Value: 1}, {Key: "name", Value: 1}}, q.Sort)
}

func TestEnumAndIntFields(t *testing.T) {
	pid := primitive.NewObjectID()
	q, err := AdminReviews.Parse(values("status=approved&rating=4&product=" + pid.Hex()))
	require.NoError(t, err)
	assert.Equal(t, "approved", q.Filter["status"])
	assert.Equal(t, 4, q.Filter["rating"])
	assert.Equal(t, pid, q.Filter["product"])

	_, err = AdminReviews.Parse(values("rating=6"))
	assert.True(t, apperror.Is(err, apperror.KindValidation))

	_, err = PublicNews.Parse(values("category=" + url.QueryEscape(string(models.NewsPromotion))))
	assert.NoError(t, err)
}

func TestParseText(t *testing.T) {
	q, err := SearchProducts.ParseText(values("q=tai+nghe&minPrice=10"))
	require.NoError(t, err)
	assert.Equal(t, "tai nghe", q.Text)
	assert.Equal(t, bson.M{"$search": "tai nghe"}, q.Filter["$text"])
	assert.Nil(t, q.Sort)
	assert.Nil(t, q.Filter["$or"])

	opts := q.FindOptions()
	assert.Equal(t, bson.D{{Key: "score", Value: bson.M{"$meta": "textScore"}}}, opts.Sort)

	q, err = SearchProducts.ParseText(values("q=loa&sort=-price"))
	require.NoError(t, err)
	assert.Equal(t, bson.D{{Key: "price", Value: -1}}, q.FindOptions().Sort)

	_, err = SearchProducts.ParseText(values("q="))
	ae, ok := apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, "q", ae.Field)
}
