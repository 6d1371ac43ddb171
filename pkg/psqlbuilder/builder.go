package psqlbuilder

import (
	"strings"

	"github.com/Masterminds/squirrel"
)

// builder squirrel с плейсхолдерами PostgreSQL ($1, $2, ...)
var builder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Select начинает SELECT запрос
func Select(columns ...string) squirrel.SelectBuilder {
	return builder.Select(columns...)
}

// Insert начинает INSERT запрос
func Insert(table string) squirrel.InsertBuilder {
	return builder.Insert(table)
}

// Update начинает UPDATE запрос
func Update(table string) squirrel.UpdateBuilder {
	return builder.Update(table)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike экранирует метасимволы LIKE/ILIKE (\, %, _), чтобы строка
// сравнивалась буквально. Экранирующий символ по умолчанию в PostgreSQL - обратный слеш.
func EscapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// Contains возвращает шаблон для поиска подстроки: %<escaped>%
func Contains(s string) string {
	return "%" + EscapeLike(s) + "%"
}
