package moon

import (
	"fmt"
	"strings"
)

// Language selects the label translation
type Language int

const (
	English Language = iota
	Chinese
	French
	Japanese
	Spanish
)

// Languages lists every supported language in cycling order
var Languages = []Language{English, Chinese, French, Japanese, Spanish}

// String returns the language's name in that language
func (l Language) String() string {
	switch l {
	case Chinese:
		return "中文"
	case French:
		return "Français"
	case Japanese:
		return "日本語"
	case Spanish:
		return "Español"
	default:
		return "English"
	}
}

// Code returns the ISO 639-1 code
func (l Language) Code() string {
	switch l {
	case Chinese:
		return "zh"
	case French:
		return "fr"
	case Japanese:
		return "ja"
	case Spanish:
		return "es"
	default:
		return "en"
	}
}

// Next cycles to the following language, wrapping to English
func (l Language) Next() Language {
	n := len(Languages)
	return Languages[((int(l)+1)%n+n)%n]
}

// ParseLanguage accepts an ISO code or an English language name
func ParseLanguage(s string) (Language, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "en", "english":
		return English, nil
	case "zh", "chinese":
		return Chinese, nil
	case "fr", "french":
		return French, nil
	case "ja", "japanese":
		return Japanese, nil
	case "es", "spanish":
		return Spanish, nil
	}
	return English, fmt.Errorf("unknown language %q (want en, zh, fr, ja or es)", s)
}

// Feature is a named surface landmark in selenographic coordinates
type Feature struct {
	Names map[Language]string
	Lat   float64 // degrees, north positive
	Lon   float64 // degrees, east positive
}

// Name returns the localized name, falling back to English
func (f Feature) Name(l Language) string {
	if n, ok := f.Names[l]; ok {
		return n
	}
	return f.Names[English]
}

func feature(lat, lon float64, en, zh, fr, ja, es string) Feature {
	return Feature{
		Names: map[Language]string{
			English:  en,
			Chinese:  zh,
			French:   fr,
			Japanese: ja,
			Spanish:  es,
		},
		Lat: lat,
		Lon: lon,
	}
}

// Features is the static landmark table drawn by the label overlay
var Features = []Feature{
	feature(18.4, -57.4, "Oceanus Procellarum", "风暴洋", "Océan des Tempêtes", "嵐の大洋", "Océano de las Tormentas"),
	feature(32.8, -25.6, "Mare Imbrium", "雨海", "Mer des Pluies", "雨の海", "Mar de las Lluvias"),
	feature(20.0, 13.5, "Mare Serenitatis", "澄海", "Mer de la Sérénité", "晴れの海", "Mar de la Serenidad"),
	feature(3.5, 22.4, "Mare Tranquillitatis", "静海", "Mer de la Tranquillité", "静かの海", "Mar de la Tranquilidad"),
	feature(17.0, 58.5, "Mare Crisium", "危海", "Mer des Crises", "危難の海", "Mar de las Crisis"),
	feature(-43.3, -11.2, "Tycho", "第谷", "Tycho", "ティコ", "Tycho"),
	feature(9.6, -20.1, "Copernicus", "哥白尼", "Copernic", "コペルニクス", "Copérnico"),
	feature(8.1, -38.0, "Kepler", "开普勒", "Kepler", "ケプラー", "Kepler"),
	feature(23.7, -47.4, "Aristarchus", "阿里斯塔克斯", "Aristarque", "アリスタルコス", "Aristarco"),
	feature(51.6, -9.3, "Plato", "柏拉图", "Platon", "プラトン", "Platón"),
}
