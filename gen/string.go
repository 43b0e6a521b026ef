package gen

import (
	"math/rand"
	"unicode/utf8"
)

// Atalhos de alfabetos comuns (ASCII puro pra evitar surpresas)
const (
	AlphabetLower   = "abcdefghijklmnopqrstuvwxyz"
	AlphabetUpper   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	AlphabetAlpha   = AlphabetLower + AlphabetUpper
	AlphabetDigits  = "0123456789"
	AlphabetAlphaNum = AlphabetAlpha + AlphabetDigits
	AlphabetASCII   = AlphabetAlphaNum + " !\"#$%&'()*+,-./:;<=>?@[\\]^_{|}~"
)

// String gera strings usando um alfabeto (conjunto de runas) e um Size.
// - Se size.Min/Max = 0, usa padrão: Min=0, Max=32.
// - Se alphabet vazio, usa AlphabetAlphaNum.
func String(alphabet string, size Size) Generator[string] {
	return From(func(r *rand.Rand, sz Size) (string, Shrinker[string]) {
		if r == nil {
			r = rand.New(rand.NewSource(rand.Int63()))
		}
		// defaults
		if len(alphabet) == 0 {
			alphabet = AlphabetAlphaNum
		}
		if size.Min == 0 && size.Max == 0 {
			size.Min, size.Max = 0, 32
		}
		if sz.Min != 0 || sz.Max != 0 { // permitir override externo
			size = sz
		}
		if size.Max < size.Min {
			size.Max = size.Min
		}

		// generate
		n := size.Min
		if size.Max > size.Min {
			n += r.Intn(size.Max - size.Min + 1)
		}
		b := make([]rune, n)
		for i := 0; i < n; i++ {
			b[i] = rune(alphabet[r.Intn(len(alphabet))])
		}
		cur := string(b)

		// ---- shrinking: multi-ramo (BFS/DFS) com dedup ----
		type neighbor = string
		queue := make([]neighbor, 0, 64)
		seen := map[string]struct{}{cur: {}}
		var last string

		push := func(s string) {
			if _, ok := seen[s]; ok {
				return
			}
			seen[s] = struct{}{}
			queue = append(queue, s)
		}

		// heurística, da mais agressiva pra mais conservadora:
		// (0) candidatos canônicos curtos ("", "a", "test"), respeitando min-length
		// (1) prefixos por bisseção de comprimento (metade, um quarto, ...)
		// (2) decrementos de comprimento um a um
		// (3) simplificar caracteres pro primeiro do alfabeto
		// Nenhuma etapa emite algo mais curto que size.Min.
		growNeighbors := func(base string) {
			queue = queue[:0]
			minLen := size.Min

			for _, canon := range []string{"", "a", "test"} {
				if utf8.RuneCountInString(canon) >= minLen && canon != base {
					push(canon)
				}
			}

			rs := []rune(base)
			L := len(rs)
			if L > minLen {
				for half := L / 2; half >= minLen; half /= 2 {
					if half < L {
						push(string(rs[:half]))
					}
					if half == 0 {
						break
					}
				}
				for newLen := L - 1; newLen >= minLen; newLen-- {
					push(string(rs[:newLen]))
				}
			}

			if L > 0 {
				target := rune(alphabet[0]) // ex.: 'a' ou '0'
				// direita→esquerda para estabilizar logo sufixos
				for i := L - 1; i >= 0; i-- {
					if rs[i] != target {
						rs2 := make([]rune, L)
						copy(rs2, rs)
						rs2[i] = target
						if s := string(rs2); utf8.ValidString(s) {
							push(s)
						}
					}
				}
			}
		}
		growNeighbors(cur)

		pop := func() (string, bool) {
			if len(queue) == 0 {
				return "", false
			}
			if shrinkStrategy == "dfs" {
				v := queue[len(queue)-1]
				queue = queue[:len(queue)-1]
				return v, true
			}
			v := queue[0]
			queue = queue[1:]
			return v, true
		}

		return cur, func(accept bool) (string, bool) {
			if accept {
				if last != "" && last != cur {
					cur = last
					growNeighbors(cur)
				}
			}
			next, ok := pop()
			if !ok {
				return "", false
			}
			last = next
			return next, true
		}
	})
}

// Açúcares sintáticos
func StringAlpha(size Size) Generator[string]    { return String(AlphabetAlpha, size) }
func StringAlphaNum(size Size) Generator[string] { return String(AlphabetAlphaNum, size) }
func StringDigits(size Size) Generator[string]   { return String(AlphabetDigits, size) }
func StringASCII(size Size) Generator[string]    { return String(AlphabetASCII, size) }

