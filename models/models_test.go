package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hugox-backend/apperror"
)

func strp(s string) *string     { return &s }
func intp(i int) *int           { return &i }
func floatp(f float64) *float64 { return &f }

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Áo thun Nam (2024)!":          "ao-thun-nam-2024",
		"Điện thoại   Samsung":         "dien-thoai-samsung",
		"  --Hello__World--  ":         "hello-world",
		"Tai nghe Bluetooth Không dây": "tai-nghe-bluetooth-khong-day",
		"!!!":                          "",
	}
	for in, want := range cases {
		assert.Equal(t, want, Slugify(in), in)
	}
}

func TestParseEnum(t *testing.T) {
	got, err := ParseEnum("category", "Khuyến mãi", NewsCategories...)
	require.NoError(t, err)
	assert.Equal(t, NewsPromotion, got)

	_, err = ParseEnum("category", "Promo", NewsCategories...)
	require.Error(t, err)
	ae, ok := apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, "category", ae.Field)
	assert.Equal(t, apperror.KindValidation, ae.Kind)
}

func TestNewPagination(t *testing.T) {
	assert.Equal(t, int64(2), NewPagination(1, 2, 3).Pages)
	assert.Equal(t, int64(0), NewPagination(1, 10, 0).Pages)
	assert.Equal(t, int64(1), NewPagination(1, 10, 10).Pages)
	assert.Equal(t, int64(11), NewPagination(3, 10, 101).Pages)
}

func TestProductInputClampsRatings(t *testing.T) {
	in := &ProductInput{
		Name:          strp("  Loa Bluetooth  "),
		Description:   strp("Loa di động"),
		Price:         floatp(150000),
		Category:      strp("64b7f0c2a1b2c3d4e5f60718"),
		Stock:         intp(3),
		QualityRating: floatp(7),
		Rating:        floatp(-1),
		Sold:          intp(-4),
	}
	require.NoError(t, in.Clean(true))
	assert.Equal(t, "Loa Bluetooth", *in.Name)
	assert.Equal(t, 5.0, *in.QualityRating)
	assert.Equal(t, 0.0, *in.Rating)
	assert.Equal(t, 0, *in.Sold)

	p := NewProduct(in, time.Now())
	assert.Equal(t, "loa-bluetooth", p.Slug)
	assert.Equal(t, ProductDraft, p.Status)
	assert.Equal(t, 5.0, p.DeliveryRating)
	assert.Equal(t, "64b7f0c2a1b2c3d4e5f60718", p.CategoryID.Hex())
}

func TestSlugMustSurviveSlugify(t *testing.T) {
	promo := NewsPromotion
	for _, name := range []string{"!!!", "产品 新", "★★★"} {
		t.Run(name, func(t *testing.T) {
			product := &ProductInput{
				Name:        strp(name),
				Description: strp("Mo ta"),
				Price:       floatp(1000),
				Category:    strp("64b7f0c2a1b2c3d4e5f60718"),
				Stock:       intp(1),
			}
			assertSlugRejected(t, product.Clean(true), "Product slug is required")

			_, err := (&CategoryInput{Name: strp(name)}).Validate(true)
			assertSlugRejected(t, err, "Category slug is required")

			err = (&NewsInput{Title: strp(name), Content: strp("Noi dung"), Category: &promo}).Validate(true)
			assertSlugRejected(t, err, "News slug is required")
		})
	}

	update := &ProductInput{Slug: strp("★★★")}
	assertSlugRejected(t, update.Clean(false), "Product slug is required")

	_, err := (&CategoryInput{Slug: strp("!!!")}).Validate(false)
	assertSlugRejected(t, err, "Category slug is required")

	blank := &NewsInput{Slug: strp("   ")}
	require.NoError(t, blank.Validate(false))
	assert.Nil(t, blank.Slug)

	named := &NewsInput{Title: strp("Ra mắt Robot X1"), Content: strp("Noi dung"), Category: &promo}
	require.NoError(t, named.Validate(true))
	assert.Equal(t, "ra-mat-robot-x1", *named.Slug)
}

func assertSlugRejected(t *testing.T, err error, msg string) {
	t.Helper()
	require.Error(t, err)
	ae, ok := apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, apperror.KindValidation, ae.Kind)
	assert.Equal(t, "slug", ae.Field)
	assert.Equal(t, msg, ae.Message)
}

func TestProductInputRejects(t *testing.T) {
	cases := map[string]*ProductInput{
		"price":    {Name: strp("A"), Description: strp("d"), Price: floatp(-1), Category: strp("64b7f0c2a1b2c3d4e5f60718"), Stock: intp(1)},
		"category": {Name: strp("A"), Description: strp("d"), Price: floatp(1), Category: strp("nope"), Stock: intp(1)},
		"stock":    {Name: strp("A"), Description: strp("d"), Price: floatp(1), Category: strp("64b7f0c2a1b2c3d4e5f60718"), Stock: intp(-1)},
		"name":     {Description: strp("d"), Price: floatp(1), Category: strp("64b7f0c2a1b2c3d4e5f60718"), Stock: intp(1)},
	}
	for field, in := range cases {
		err := in.Clean(true)
		ae, ok := apperror.As(err)
		require.True(t, ok, field)
		assert.Equal(t, field, ae.Field)
	}
}

func TestProductCleansLinksAndSections(t *testing.T) {
	in := &ProductInput{
		PurchaseLinks: &PurchaseLinks{
			Shopee: " https://shopee.vn/x ",
			Custom: []CustomLink{{Platform: "Lazada", URL: "https://lazada.vn/x"}, {Platform: " ", URL: "u"}},
		},
		Specifications: []Section{{Title: "Pin", Content: "5000mAh"}, {Title: "", Content: "x"}, {Title: "Màn", Content: "6.5", Order: 9}},
	}
	require.NoError(t, in.Clean(false))
	assert.Equal(t, "https://shopee.vn/x", in.PurchaseLinks.Shopee)
	assert.Len(t, in.PurchaseLinks.Custom, 1)
	require.Len(t, in.Specifications, 2)
	assert.Equal(t, 0, in.Specifications[0].Order)
	assert.Equal(t, 9, in.Specifications[1].Order)
}

func TestProductDerivedFields(t *testing.T) {
	p := &Product{Price: 750000, OriginalPrice: 1000000, Status: ProductActive, Stock: 2}
	v := ViewProduct(p)
	assert.Equal(t, 25, v.DiscountPercentage)
	assert.True(t, v.IsAvailable)

	p.Stock = 0
	assert.False(t, p.IsAvailable())
}

func TestReviewRatingBounds(t *testing.T) {
	for _, r := range []int{0, 6} {
		in := &ReviewInput{Product: strp("64b7f0c2a1b2c3d4e5f60718"), Rating: intp(r), Comment: strp("ok")}
		_, err := in.Validate(true)
		assert.True(t, apperror.Is(err, apperror.KindValidation), "rating %d", r)
	}
	in := &ReviewInput{Product: strp("64b7f0c2a1b2c3d4e5f60718"), Rating: intp(5), Comment: strp("ok")}
	id, err := in.Validate(true)
	require.NoError(t, err)
	assert.Equal(t, "64b7f0c2a1b2c3d4e5f60718", id.Hex())
}

func TestDistributionFillsGaps(t *testing.T) {
	got := Distribution([]RatingBucket{{Rating: 4, Count: 2}, {Rating: 1, Count: 1}})
	require.Len(t, got, 5)
	assert.Equal(t, RatingBucket{Rating: 5, Count: 0}, got[0])
	assert.Equal(t, RatingBucket{Rating: 4, Count: 2}, got[1])
	assert.Equal(t, RatingBucket{Rating: 1, Count: 1}, got[4])
}

func TestContactValidation(t *testing.T) {
	in := &ContactInput{
		Name:    strp("Lan"),
		Email:   strp("Lan@Example.com"),
		Phone:   strp("0901234567"),
		Subject: strp("Hỏi giá"),
		Content: strp("Xin báo giá"),
	}
	_, err := in.Validate(true)
	require.NoError(t, err)
	assert.Equal(t, "lan@example.com", *in.Email)

	in.Phone = strp("12345")
	_, err = in.Validate(true)
	assert.True(t, apperror.Is(err, apperror.KindValidation))
}

func TestNewsValidateRejectsUnknownCategory(t *testing.T) {
	cat := NewsCategory("Sports")
	in := &NewsInput{Title: strp("T"), Content: strp("C"), Category: &cat}
	err := in.Validate(true)
	ae, ok := apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, "category", ae.Field)
}

func TestSettingsMerge(t *testing.T) {
	s := DefaultSettings()
	require.NoError(t, s.Merge(SectionGeneral, json.RawMessage(`{"phone":"0900000000"}`)))
	assert.Equal(t, "0900000000", s.General.Phone)
	assert.Equal(t, "HugoX E-commerce", s.General.SiteName)

	err := s.Merge(SectionGeneral, json.RawMessage(`{"bogus":1}`))
	ae, ok := apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, "bogus", ae.Field)
	assert.Equal(t, "0900000000", s.General.Phone)

	_, err = s.Section("billing")
	assert.True(t, apperror.Is(err, apperror.KindValidation))

	require.NoError(t, s.Merge(SectionPayment, json.RawMessage(`{"cod":{"fee":15000}}`)))
	assert.Equal(t, 15000.0, s.Payment.COD.Fee)
	assert.True(t, s.Payment.COD.Enabled)
}

func TestPeriodDays(t *testing.T) {
	assert.Equal(t, 7, Period7d.Days())
	assert.Equal(t, 365, Period1y.Days())
	assert.Equal(t, 30, Period("").Days())
}
