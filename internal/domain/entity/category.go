package entity

// CategoryAll is the sentinel that disables category filtering.
const CategoryAll = "Todos"

// Categories is the catalog shown to business owners. The category
// field itself is an open string, so listings with retired categories
// keep working.
var Categories = []string{
	"Comida casera",
	"Pastelería",
	"Artesanías",
	"Lencería",
	"Servicios técnicos",
	"Tecnología",
	"Productos naturales",
	"Productos para bebés",
	"Moda y accesorios",
	"Deportes y outdoor",
	"Educación y cursos",
}
