package component

import "github.com/bnema/fsearch/internal/domain/entity"

type labels struct {
	search         string
	suggestRemoved string
	remove         string
}

var labelsByLang = map[string]labels{
	entity.LangEN: {
		search:         "Search",
		suggestRemoved: "Suggest removed",
		remove:         "Remove",
	},
	entity.LangRU: {
		search:         "Введите запрос",
		suggestRemoved: "Подсказка удалена",
		remove:         "Удалить",
	},
}

func labelsFor(lang string) labels {
	if l, ok := labelsByLang[lang]; ok {
		return l
	}
	return labelsByLang[entity.LangEN]
}

// SearchLabel is the input label for lang.
func SearchLabel(lang string) string { return labelsFor(lang).search }

// RemovedPlaceholder replaces a suggestion row after its removal.
func RemovedPlaceholder(lang string) string { return labelsFor(lang).suggestRemoved }

// RemoveLabel is the caption of a suggestion's remove control.
func RemoveLabel(lang string) string { return labelsFor(lang).remove }
