package locale_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/jsonloc/pkg/locale"
)

func TestClassifyPathFragment(t *testing.T) {
	t.Parallel()

	tests := []struct {
		locale   string
		fragment string
	}{
		{"en-US", ""},
		{"af-ZA", "af"},
		{"ar-AE", "ar/AE"},
		{"ar-EG", "ar"},
		{"az-Latn-AZ", "az"},
		{"bn-IN", "bn/IN"},
		{"bs-Latn-BA", "bs"},
		{"bs-Latn-ME", "bs/Latn/ME"},
		{"de-AT", "de/AT"},
		{"de-CH", "de/CH"},
		{"de-DE", "de"},
		{"el-CY", "el/CY"},
		{"el-GR", "el"},
		{"en-GB", "en/GB"},
		{"en-AU", "en/AU"},
		{"es-ES", "es"},
		{"es-US", "es/US"},
		{"fa-AF", "fa/AF"},
		{"fa-IR", "fa"},
		{"fr-CA", "fr/CA"},
		{"fr-FR", "fr"},
		{"ha-Latn-NG", "ha"},
		{"hr-HR", "hr"},
		{"hr-ME", "hr/ME"},
		{"it-CH", "it/CH"},
		{"it-IT", "it"},
		{"ja-JP", "ja"},
		{"kk-Cyrl-KZ", "kk"},
		{"ko-KR", "ko"},
		{"ku-Arab-IQ", "ku/Arab/IQ"},
		{"mn-Cyrl-MN", "mn"},
		{"ms-MY", "ms"},
		{"ms-SG", "ms/SG"},
		{"pa-IN", "pa"},
		{"pa-PK", "pa/PK"},
		{"pt-BR", "pt"},
		{"pt-PT", "pt/PT"},
		{"sq-AL", "sq"},
		{"sr-Latn-ME", "sr/Latn/ME"},
		{"sr-Latn-RS", "sr/Latn/RS"},
		{"sv-FI", "sv/FI"},
		{"sv-SE", "sv"},
		{"sw-Latn-KE", "sw/Latn/KE"},
		{"tr-TR", "tr"},
		{"ur-IN", "ur/IN"},
		{"ur-PK", "ur"},
		{"uz-Latn-UZ", "uz"},
		{"zh-Hans-CN", "zh"},
		{"zh-Hans-SG", "zh/Hans/SG"},
		{"zh-Hant-HK", "zh/Hant/HK"},
		{"zh-Hant-TW", "zh/Hant/TW"},
	}

	for _, tt := range tests {
		t.Run(tt.locale, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.fragment, locale.Classify(tt.locale).PathFragment)
		})
	}
}

func TestClassify(t *testing.T) {
	t.Parallel()

	t.Run("root locale", func(t *testing.T) {
		t.Parallel()
		info := locale.Classify("en-US")
		assert.True(t, info.IsRoot)
		assert.True(t, info.IsLanguageBase)
		assert.Empty(t, info.SuppressionBase)
		assert.Empty(t, info.PathFragment)
	})

	t.Run("language base compares with root", func(t *testing.T) {
		t.Parallel()
		info := locale.Classify("fr-FR")
		assert.False(t, info.IsRoot)
		assert.True(t, info.IsLanguageBase)
		assert.Equal(t, "fr-FR", info.BaseLocale)
		assert.Equal(t, "en-US", info.SuppressionBase)
	})

	t.Run("region variant compares with base", func(t *testing.T) {
		t.Parallel()
		info := locale.Classify("fr-CA")
		assert.False(t, info.IsLanguageBase)
		assert.Equal(t, "fr-FR", info.BaseLocale)
		assert.Equal(t, "fr-FR", info.SuppressionBase)
	})

	t.Run("script is kept when present", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "zh-Hans-CN", locale.Classify("zh-Hant-TW").SuppressionBase)
		assert.Equal(t, "sr-Cyrl-RS", locale.Classify("sr-Latn-RS").SuppressionBase)
	})

	t.Run("custom root", func(t *testing.T) {
		t.Parallel()
		c := locale.New(locale.WithRoot("en-GB"))
		assert.Equal(t, "en-GB", c.Root())
		assert.Empty(t, c.Classify("en-GB").PathFragment)
		assert.Equal(t, "en", c.Classify("en-US").PathFragment)
		assert.Equal(t, "en-GB", c.Classify("de-DE").SuppressionBase)
	})

	t.Run("base locale override", func(t *testing.T) {
		t.Parallel()
		c := locale.New(locale.WithBaseLocales(map[string]string{"es": "es-US"}))
		assert.Equal(t, "es", c.Classify("es-US").PathFragment)
		assert.Equal(t, "es/ES", c.Classify("es-ES").PathFragment)
		assert.Equal(t, "es-US", c.Classify("es-MX").SuppressionBase)
	})

	t.Run("unparseable locale", func(t *testing.T) {
		t.Parallel()
		info := locale.Classify("12-34")
		assert.False(t, info.IsLanguageBase)
		assert.Equal(t, "12-34", info.BaseLocale)
		assert.Equal(t, "12/34", info.PathFragment)
	})
}

func TestLanguage(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "zh", locale.Language("zh-Hant-TW"))
	assert.Equal(t, "de", locale.Language("de"))
}

func TestLikelySubtags(t *testing.T) {
	t.Parallel()

	c := locale.New()

	t.Run("language base", func(t *testing.T) {
		t.Parallel()
		for _, loc := range []string{"ar-EG", "az-Latn-AZ", "pt-BR", "zh-Hans-CN", "ja-JP"} {
			assert.True(t, c.IsLanguageBase(loc), loc)
		}
		for _, loc := range []string{"bn-IN", "pt-PT", "sr-Latn-RS", "zh-Hant-TW", "en-GB"} {
			assert.False(t, c.IsLanguageBase(loc), loc)
		}
	})

	t.Run("base locale", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "pt-BR", c.BaseLocale("pt-PT"))
		assert.Equal(t, "ar-EG", c.BaseLocale("ar-AE"))
		assert.Equal(t, "zh-Hans-CN", c.BaseLocale("zh-Hant-HK"))
		assert.Equal(t, "de-DE", c.BaseLocale("de"))
	})

	t.Run("override matched after expansion", func(t *testing.T) {
		t.Parallel()
		o := locale.New(locale.WithBaseLocales(map[string]string{"zh": "zh-CN"}))
		assert.True(t, o.IsLanguageBase("zh-Hans-CN"))
		assert.False(t, o.IsLanguageBase("zh-Hant-TW"))
		assert.Equal(t, "zh", o.Classify("zh-Hans-CN").PathFragment)
	})
}
