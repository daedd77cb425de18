package i18n

import (
	"sync/atomic"

	"golang.org/x/text/language"
)

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "type" or "key").
type Translator interface {
	Message(code string, data map[string]string) string
}

var supported = []language.Tag{language.English, language.Japanese}

var matcher = language.NewMatcher(supported)

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang language.Tag }

func (t dictTranslator) Message(code string, data map[string]string) string {
	msg := code
	if t.lang == language.Japanese {
		switch code {
		case "nested_union":
			msg = "バリアントの中身に別の列挙型は使えません"
		case "definition_collision":
			msg = "定義キーが別の型と衝突しています"
		case "unsupported_shape":
			msg = "スキーマに変換できない型です"
		case "recursive_type":
			msg = "再帰する型は定義として指定する必要があります"
		case "duplicate_property":
			msg = "プロパティ名が重複しています"
		case "invalid_tag":
			msg = "構造体タグが不正です"
		case "encode_error":
			msg = "スキーマの書き出しに失敗しました"
		}
	} else {
		switch code {
		case "nested_union":
			msg = "union variant wraps another union"
		case "definition_collision":
			msg = "definition key is claimed by two types"
		case "unsupported_shape":
			msg = "type cannot be described as a schema"
		case "recursive_type":
			msg = "recursive type must be marked as a definition"
		case "duplicate_property":
			msg = "duplicate property name"
		case "invalid_tag":
			msg = "malformed struct tag"
		case "encode_error":
			msg = "schema could not be encoded"
		}
	}
	if typ := data["type"]; typ != "" {
		msg += " (" + typ + ")"
	}
	return msg
}

var current atomic.Value

func init() { current.Store(holder{dictTranslator{lang: language.English}}) }

// holder keeps the stored concrete type stable for atomic.Value.
type holder struct{ Translator }

// SetLanguage switches the built-in Translator to the closest supported
// language for a BCP 47 tag or Accept-Language style list ("ja-JP",
// "fr, ja;q=0.8"). Unsupported input falls back to English.
func SetLanguage(lang string) {
	current.Store(holder{dictTranslator{lang: Match(lang)}})
}

// Match returns the supported language closest to lang.
func Match(lang string) language.Tag {
	_, i := language.MatchStrings(matcher, lang)
	return supported[i]
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		tr = dictTranslator{lang: language.English}
	}
	current.Store(holder{tr})
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string {
	return current.Load().(holder).Message(code, data)
}
