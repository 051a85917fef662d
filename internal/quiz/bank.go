package quiz

import "fmt"

var names = []string{
	"João", "Maria", "Pedro", "Ana", "Lucas", "Carla",
	"Marcos", "Júlia", "Roberto", "Fernanda", "Tiago", "Beatriz",
}

var items = []string{
	"figurinhas", "balas", "lápis", "carrinhos", "reais",
	"frutas", "folhas", "livros", "bolinhas de gude", "canetas",
}

type container struct {
	singular string // with article, e.g. "Uma caixa"
	plural   string
}

var containers = []container{
	{"Uma caixa", "caixas"},
	{"Um pacote", "pacotes"},
	{"Um álbum", "álbuns"},
	{"Um pote", "potes"},
	{"Uma cesta", "cestas"},
}

var idPrefixes = map[Category]string{
	CategoryAdd:  "add",
	CategorySub:  "sub",
	CategoryMult: "mult",
	CategoryDiv:  "div",
}

// Bank is the immutable set of questions a process samples quizzes from.
// It is built once by BuildBank and is safe for concurrent reads.
type Bank struct {
	questions map[Category][]Question
	byID      map[string]Question
}

// BuildBank generates sizes[c] questions for every category in bank order.
// IDs come from a single counter shared across categories, so a default
// bank runs from "add-1" to "div-200".
func BuildBank(r Rand, sizes map[Category]int) *Bank {
	b := &Bank{
		questions: make(map[Category][]Question, len(sizes)),
		byID:      make(map[string]Question),
	}

	seq := 0
	for _, cat := range AllCategories() {
		n := sizes[cat]
		if n <= 0 {
			continue
		}
		qs := make([]Question, 0, n)
		for i := 0; i < n; i++ {
			seq++
			q := generate(r, cat, i)
			q.ID = fmt.Sprintf("%s-%d", idPrefixes[cat], seq)
			q.Options = GenerateOptions(r, q.Answer)
			qs = append(qs, q)
			b.byID[q.ID] = q
		}
		b.questions[cat] = qs
	}
	return b
}

// Questions returns a copy of the category's questions in generation order.
func (b *Bank) Questions(c Category) []Question {
	src := b.questions[c]
	out := make([]Question, len(src))
	copy(out, src)
	return out
}

// Size returns how many questions the bank holds for c.
func (b *Bank) Size(c Category) int {
	return len(b.questions[c])
}

// Len returns the total number of questions in the bank.
func (b *Bank) Len() int {
	return len(b.byID)
}

// Lookup finds a question by ID.
func (b *Bank) Lookup(id string) (Question, bool) {
	q, ok := b.byID[id]
	return q, ok
}

func generate(r Rand, cat Category, i int) Question {
	name := pick(r, names)
	item := pick(r, items)

	var (
		text   string
		answer int
		ops    Operands
	)

	switch cat {
	case CategoryAdd:
		a, b := between(r, 5, 55), between(r, 5, 45)
		ops, answer = Operands{A: a, B: b}, a+b
		if i%2 == 0 {
			text = fmt.Sprintf("%s tinha %d %s e ganhou %d. Quantos %s ele tem agora?", name, a, item, b, item)
		} else {
			text = fmt.Sprintf("%s comprou %d %s e depois comprou mais %d. Com quantos ficou no total?", name, a, item, b)
		}

	case CategorySub:
		a := between(r, 20, 100)
		b := between(r, 1, a-5)
		ops, answer = Operands{A: a, B: b}, a-b
		if i%2 == 0 {
			text = fmt.Sprintf("%s tinha %d %s e perdeu %d. Com quantos ficou?", name, a, item, b)
		} else {
			text = fmt.Sprintf("De um total de %d %s, %s usou %d. Quantos restam?", a, item, name, b)
		}

	case CategoryMult:
		a, b := between(r, 2, 14), between(r, 2, 12)
		ops, answer = Operands{A: a, B: b}, a*b
		switch i % 3 {
		case 0:
			c := containers[r.IntN(len(containers))]
			text = fmt.Sprintf("%s tem %d %s. %s comprou %d %s. Quantos %s são?", c.singular, a, item, name, b, c.plural, item)
		case 1:
			text = fmt.Sprintf("%s estuda %d horas por dia durante %d dias. Quantas horas estudou?", name, a, b)
		default:
			text = fmt.Sprintf("%s organizou %d fileiras com %d cadeiras cada. Quantas cadeiras há no total?", name, b, a)
		}

	case CategoryDiv:
		quotient, divisor := between(r, 2, 17), between(r, 2, 10)
		total := quotient * divisor
		ops, answer = Operands{A: total, B: divisor}, quotient
		if i%2 == 0 {
			text = fmt.Sprintf("%s tem %d %s e dividiu igualmente entre %d amigos. Quantos cada um recebeu?", name, total, item, divisor)
		} else {
			text = fmt.Sprintf("Para guardar %d %s em %d caixas iguais, quantos %s ficam em cada caixa?", total, item, divisor, item)
		}
	}

	return Question{
		Category: cat,
		Text:     text,
		Answer:   answer,
		Operands: ops,
	}
}

func pick(r Rand, from []string) string {
	return from[r.IntN(len(from))]
}
