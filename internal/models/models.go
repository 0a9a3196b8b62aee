package models

// cutLength is the maximum rune count used when rendering an entity as
// a short string (admin listings, log fields).
const cutLength = 15

// All returns every entity type, in migration order.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Group{},
		&Post{},
		&Comment{},
		&Follow{},
	}
}

func cut(s string) string {
	runes := []rune(s)
	if len(runes) <= cutLength {
		return s
	}
	return string(runes[:cutLength]) + "…"
}
