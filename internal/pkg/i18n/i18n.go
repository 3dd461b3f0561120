package i18n

import (
	"encoding/json"
	"sync"

	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

// Translator wraps a go-i18n bundle seeded with the built-in catalog.
type Translator struct {
	bundle *goi18n.Bundle

	mu         sync.RWMutex
	localizers map[string]*goi18n.Localizer
	supported  []language.Tag
	matcher    language.Matcher
	fallback   string
}

func New(defaultLang string) *Translator {
	tag, err := language.Parse(defaultLang)
	if err != nil {
		tag = language.BrazilianPortuguese
	}

	bundle := goi18n.NewBundle(tag)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)
	bundle.AddMessages(language.BrazilianPortuguese, ptBR...)
	bundle.AddMessages(language.English, en...)

	t := &Translator{
		bundle:   bundle,
		fallback: tag.String(),
	}
	t.reset(tag)
	return t
}

// reset drops cached localizers and rebuilds the matcher; the default
// language comes first so unmatched headers resolve to it.
func (t *Translator) reset(def language.Tag) {
	supported := []language.Tag{def}
	for _, tag := range t.bundle.LanguageTags() {
		if tag != def {
			supported = append(supported, tag)
		}
	}
	t.localizers = map[string]*goi18n.Localizer{}
	t.supported = supported
	t.matcher = language.NewMatcher(supported)
}

// Load merges a locale file (e.g. active.en.json) over the built-in catalog.
func (t *Translator) Load(path string) error {
	_, err := t.bundle.LoadMessageFile(path)
	if err != nil {
		return err
	}
	t.mu.Lock()
	t.reset(t.supported[0])
	t.mu.Unlock()
	return nil
}

// resolve maps an Accept-Language value onto one of the bundle's languages.
func (t *Translator) resolve(lang string) string {
	if lang == "" {
		return t.fallback
	}
	tags, _, err := language.ParseAcceptLanguage(lang)
	if err != nil || len(tags) == 0 {
		return t.fallback
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, idx, conf := t.matcher.Match(tags...)
	if conf == language.No {
		return t.fallback
	}
	return t.supported[idx].String()
}

func (t *Translator) localizer(header string) *goi18n.Localizer {
	lang := t.resolve(header)
	t.mu.RLock()
	l, ok := t.localizers[lang]
	t.mu.RUnlock()
	if ok {
		return l
	}

	l = goi18n.NewLocalizer(t.bundle, lang, t.fallback)
	t.mu.Lock()
	t.localizers[lang] = l
	t.mu.Unlock()
	return l
}

// T localizes id; unknown ids come back as the id itself.
func (t *Translator) T(lang, id string, data map[string]interface{}) string {
	msg, err := t.localizer(lang).Localize(&goi18n.LocalizeConfig{
		MessageID:    id,
		TemplateData: data,
	})
	if err != nil {
		return id
	}
	return msg
}
