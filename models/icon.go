package models

// Icon is a purchasable cosmetic catalog item. The catalog is seeded once
// at startup and never mutated afterwards.
type Icon struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Title       string `gorm:"size:100;not null" json:"titulo"`
	Description string `gorm:"type:text" json:"descricao"`
	Price       int    `gorm:"not null" json:"preco"`
}

// DefaultIcons is the catalog installed into an empty icons table.
var DefaultIcons = []Icon{
	{Title: "Ícone Gato Língua", Description: "Customize seu perfil com esse ícone de gato!", Price: 5},
	{Title: "Ícone Gato Sentido", Description: "Customize seu perfil com esse ícone de gato disciplinado!", Price: 10},
	{Title: "Ícone Gato em Recuperação", Description: "Customize seu perfil com esse ícone de gato que foi mal na prova de Cálculo 2...", Price: 15},
	{Title: "Ícone Gato Bobo", Description: "Customize seu perfil com esse ícone de gato bobo!", Price: 20},
	{Title: "Ícone Gato Bobo 2", Description: "Customize seu perfil com esse ícone de bobo!", Price: 25},
	{Title: "Ícone Gato Estudioso", Description: "Customize seu perfil com esse ícone de gato que estuda para a prova de Cálculo 2!", Price: 50},
	{Title: "Ícone Bocchi", Description: "Customize seu perfil com esse ícone ansioso...", Price: 200},
	{Title: "Ícone Gato Lendário", Description: "Customize seu perfil com o melhor ícone de todos!", Price: 2000},
}
