package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"hugox-backend/apperror"
)

// SettingsKey identifies the one settings document.
const SettingsKey = "global"

type GeneralSettings struct {
	SiteName        string `json:"siteName" bson:"siteName"`
	SiteDescription string `json:"siteDescription" bson:"siteDescription"`
	SiteURL         string `json:"siteUrl" bson:"siteUrl"`
	AdminEmail      string `json:"adminEmail" bson:"adminEmail"`
	SupportEmail    string `json:"supportEmail" bson:"supportEmail"`
	Phone           string `json:"phone" bson:"phone"`
	Address         string `json:"address" bson:"address"`
	Zalo            string `json:"zalo" bson:"zalo"`
	Facebook        string `json:"facebook" bson:"facebook"`
	Youtube         string `json:"youtube" bson:"youtube"`
	Logo            string `json:"logo" bson:"logo"`
	Favicon         string `json:"favicon" bson:"favicon"`
	Theme           string `json:"theme" bson:"theme"`
	Language        string `json:"language" bson:"language"`
	Currency        string `json:"currency" bson:"currency"`
	Timezone        string `json:"timezone" bson:"timezone"`
}

type VNPaySettings struct {
	Enabled    bool   `json:"enabled" bson:"enabled"`
	MerchantID string `json:"merchantId" bson:"merchantId"`
	SecretKey  string `json:"secretKey" bson:"secretKey"`
	ReturnURL  string `json:"returnUrl" bson:"returnUrl"`
	CancelURL  string `json:"cancelUrl" bson:"cancelUrl"`
}

type MomoSettings struct {
	Enabled     bool   `json:"enabled" bson:"enabled"`
	PartnerCode string `json:"partnerCode" bson:"partnerCode"`
	AccessKey   string `json:"accessKey" bson:"accessKey"`
	SecretKey   string `json:"secretKey" bson:"secretKey"`
}

type CODSettings struct {
	Enabled bool    `json:"enabled" bson:"enabled"`
	Fee     float64 `json:"fee" bson:"fee"`
}

type PaymentSettings struct {
	VNPay VNPaySettings `json:"vnpay" bson:"vnpay"`
	Momo  MomoSettings  `json:"momo" bson:"momo"`
	COD   CODSettings   `json:"cod" bson:"cod"`
}

type ShippingRate struct {
	Name          string  `json:"name" bson:"name"`
	Price         float64 `json:"price" bson:"price"`
	EstimatedDays string  `json:"estimatedDays" bson:"estimatedDays"`
}

type ShippingSettings struct {
	FreeShippingThreshold float64        `json:"freeShippingThreshold" bson:"freeShippingThreshold"`
	ShippingRates         []ShippingRate `json:"shippingRates" bson:"shippingRates"`
}

type SEOSettings struct {
	MetaTitle       string `json:"metaTitle" bson:"metaTitle"`
	MetaDescription string `json:"metaDescription" bson:"metaDescription"`
	MetaKeywords    string `json:"metaKeywords" bson:"metaKeywords"`
	GoogleAnalytics string `json:"googleAnalytics" bson:"googleAnalytics"`
	FacebookPixel   string `json:"facebookPixel" bson:"facebookPixel"`
}

// Settings is the site-wide singleton, addressed by Key.
type Settings struct {
	ID        primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Key       string             `json:"-" bson:"key"`
	General   GeneralSettings    `json:"general" bson:"general"`
	Payment   PaymentSettings    `json:"payment" bson:"payment"`
	Shipping  ShippingSettings   `json:"shipping" bson:"shipping"`
	SEO       SEOSettings        `json:"seo" bson:"seo"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// DefaultSettings is the document inserted on first read.
func DefaultSettings() Settings {
	return Settings{
		Key: SettingsKey,
		General: GeneralSettings{
			SiteName:        "HugoX E-commerce",
			SiteDescription: "Hệ thống thương mại điện tử chuyên nghiệp",
			SiteURL:         "https://hugox.com",
			AdminEmail:      "admin@hugox.com",
			SupportEmail:    "support@hugox.com",
			Phone:           "08.7878.4842",
			Address:         "27 Đoàn Thị Điểm - Phường Sông Cầu - Dăk Lăk",
			Zalo:            "https://zalo.me/0878784842",
			Facebook:        "https://facebook.com/hugox",
			Youtube:         "https://youtube.com/hugox",
			Logo:            "/logo.png",
			Favicon:         "/favicon.ico",
			Theme:           "light",
			Language:        "vi",
			Currency:        "VND",
			Timezone:        "Asia/Ho_Chi_Minh",
		},
		Payment: PaymentSettings{
			VNPay: VNPaySettings{
				Enabled:    true,
				MerchantID: "your-merchant-id",
				SecretKey:  "your-secret-key",
				ReturnURL:  "https://hugox.com/payment/return",
				CancelURL:  "https://hugox.com/payment/cancel",
			},
			Momo: MomoSettings{
				Enabled:     true,
				PartnerCode: "your-partner-code",
				AccessKey:   "your-access-key",
				SecretKey:   "your-secret-key",
			},
			COD: CODSettings{Enabled: true},
		},
		Shipping: ShippingSettings{
			FreeShippingThreshold: 500000,
			ShippingRates:         []ShippingRate{},
		},
		SEO: SEOSettings{
			MetaTitle:       "HugoX - Thương mại điện tử chuyên nghiệp",
			MetaDescription: "Hệ thống thương mại điện tử với đầy đủ tính năng quản lý sản phẩm, đơn hàng và khách hàng",
			MetaKeywords:    "ecommerce, thương mại điện tử, bán hàng online",
		},
	}
}

// Section names accepted by the settings endpoints.
const (
	SectionGeneral  = "general"
	SectionPayment  = "payment"
	SectionShipping = "shipping"
	SectionSEO      = "seo"
)

// Section returns a pointer to the named sub-document.
func (s *Settings) Section(name string) (interface{}, error) {
	switch name {
	case SectionGeneral:
		return &s.General, nil
	case SectionPayment:
		return &s.Payment, nil
	case SectionShipping:
		return &s.Shipping, nil
	case SectionSEO:
		return &s.SEO, nil
	}
	return nil, apperror.Validation("section", "section must be one of: general, payment, shipping, seo")
}

// Merge overlays data onto the named section. Keys the section does not
// define are rejected and leave s untouched.
func (s *Settings) Merge(section string, data json.RawMessage) error {
	if len(bytes.TrimSpace(data)) == 0 || bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return apperror.Validation("data", "Section and data are required")
	}
	copied := *s
	copied.Shipping.ShippingRates = append([]ShippingRate(nil), s.Shipping.ShippingRates...)
	target, err := copied.Section(section)
	if err != nil {
		return err
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(target); err != nil {
		return mergeError(err)
	}
	*s = copied
	return nil
}

func mergeError(err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return apperror.Validation(typeErr.Field, typeErr.Field+" has the wrong type")
	}
	msg := err.Error()
	if i := strings.Index(msg, "unknown field "); i >= 0 {
		field := strings.Trim(msg[i+len("unknown field "):], `"`)
		return apperror.Validation(field, "unknown setting "+field)
	}
	return apperror.Validation("data", "data must be an object")
}

// ContactSettings is the contact subset of the general section.
type ContactSettings struct {
	Phone        string `json:"phone"`
	Address      string `json:"address"`
	Zalo         string `json:"zalo"`
	Facebook     string `json:"facebook"`
	Youtube      string `json:"youtube"`
	AdminEmail   string `json:"adminEmail"`
	SupportEmail string `json:"supportEmail"`
}

func (g *GeneralSettings) Contact() ContactSettings {
	return ContactSettings{
		Phone:        g.Phone,
		Address:      g.Address,
		Zalo:         g.Zalo,
		Facebook:     g.Facebook,
		Youtube:      g.Youtube,
		AdminEmail:   g.AdminEmail,
		SupportEmail: g.SupportEmail,
	}
}

// PublicGeneral is the non-sensitive projection served without auth.
type PublicGeneral struct {
	SiteName        string `json:"siteName"`
	SiteDescription string `json:"siteDescription"`
	Logo            string `json:"logo"`
	Favicon         string `json:"favicon"`
	Theme           string `json:"theme"`
	Language        string `json:"language"`
	Currency        string `json:"currency"`
	Timezone        string `json:"timezone"`
}

func (g *GeneralSettings) Public() PublicGeneral {
	return PublicGeneral{
		SiteName:        g.SiteName,
		SiteDescription: g.SiteDescription,
		Logo:            g.Logo,
		Favicon:         g.Favicon,
		Theme:           g.Theme,
		Language:        g.Language,
		Currency:        g.Currency,
		Timezone:        g.Timezone,
	}
}

type SocialMedia struct {
	Facebook string `json:"facebook"`
	Youtube  string `json:"youtube"`
	Zalo     string `json:"zalo"`
}

// PublicContact is the contact block shown in the site footer.
type PublicContact struct {
	CompanyName string      `json:"companyName"`
	Address     string      `json:"address"`
	Phone       string      `json:"phone"`
	Email       string      `json:"email"`
	Website     string      `json:"website"`
	SocialMedia SocialMedia `json:"socialMedia"`
}

func (g *GeneralSettings) PublicContact() PublicContact {
	return PublicContact{
		CompanyName: g.SiteName,
		Address:     g.Address,
		Phone:       g.Phone,
		Email:       g.SupportEmail,
		Website:     g.SiteURL,
		SocialMedia: SocialMedia{Facebook: g.Facebook, Youtube: g.Youtube, Zalo: g.Zalo},
	}
}

var contactKeys = map[string]bool{
	"phone": true, "address": true, "zalo": true, "facebook": true,
	"youtube": true, "adminEmail": true, "supportEmail": true,
}

// MergeContact overlays the contact subset of the general section. Keys
// outside ContactSettings are rejected.
func (s *Settings) MergeContact(data json.RawMessage) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil || fields == nil {
		return apperror.Validation("data", "data must be an object")
	}
	for key := range fields {
		if !contactKeys[key] {
			return apperror.Validation(key, "unknown setting "+key)
		}
	}
	return s.Merge(SectionGeneral, data)
}
