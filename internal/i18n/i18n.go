// Package i18n holds the UI labels in the languages the timer ships with.
package i18n

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Message keys. The English text doubles as the key.
const (
	Title        = "Quiz Timer"
	Start        = "Start"
	Stop         = "Stop"
	MusicPlaying = "Music is playing"
	Seconds      = "sec"
	Minutes      = "min"
	NowPlaying   = "Now playing"
	TrackOf      = "track %d of %d"
	KeyToggle    = "start/stop"
	KeyChoose    = "duration"
	KeyDirect    = "pick duration"
	KeyNext      = "next track"
	KeyHelp      = "help"
	KeyCloseHelp = "close help"
	KeyQuit      = "quit"
)

// Default is used when the requested locale is empty or unknown.
var Default = language.Russian

var supported = []language.Tag{language.Russian, language.English}

var russian = map[string]string{
	Title:        "Квиз Таймер",
	Start:        "Старт",
	Stop:         "Стоп",
	MusicPlaying: "Музыка играет",
	Seconds:      "сек",
	Minutes:      "мин",
	NowPlaying:   "Сейчас играет",
	TrackOf:      "трек %d из %d",
	KeyToggle:    "старт/стоп",
	KeyChoose:    "время",
	KeyDirect:    "выбрать время",
	KeyNext:      "следующий трек",
	KeyHelp:      "помощь",
	KeyCloseHelp: "закрыть помощь",
	KeyQuit:      "выход",
}

var messages = mustBuild()

func mustBuild() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for key, text := range russian {
		if err := b.SetString(language.Russian, key, text); err != nil {
			panic(err)
		}
		if err := b.SetString(language.English, key, key); err != nil {
			panic(err)
		}
	}
	return b
}

// Match resolves a locale such as "en", "ru-RU" or a POSIX "ru_RU.UTF-8"
// to one of the supported languages.
func Match(locale string) language.Tag {
	locale = strings.TrimSpace(locale)
	if i := strings.IndexAny(locale, ".@"); i >= 0 {
		locale = locale[:i]
	}
	locale = strings.ReplaceAll(locale, "_", "-")
	if locale == "" || locale == "C" || locale == "POSIX" {
		return Default
	}

	tag, err := language.Parse(locale)
	if err != nil {
		return Default
	}
	_, index, confidence := language.NewMatcher(supported).Match(tag)
	if confidence == language.No {
		return Default
	}
	return supported[index]
}

// NewPrinter returns a printer for the best match of locale.
func NewPrinter(locale string) *message.Printer {
	return message.NewPrinter(Match(locale), message.Catalog(messages))
}
