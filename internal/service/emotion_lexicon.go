package service

import (
	"math"
	"sort"

	"journal-llm/internal/domain"
)

// marker es una palabra o frase señal de una emoción, con un peso que mide
// qué tan fuerte es la señal (1.0 común, 1.5 fuerte, 2.0 intensa).
type marker struct {
	word   string
	weight float64
}

// emotionMarkers es el vocabulario léxico por emoción. Se carga una sola vez
// al iniciar el proceso y después es de solo lectura, así que puede
// compartirse entre análisis concurrentes sin locks.
var emotionMarkers = map[domain.Emotion][]marker{
	domain.EmotionHappy: {
		{"happy", 1.0}, {"joy", 1.0}, {"joyful", 1.5}, {"excited", 1.0},
		{"excitement", 1.0}, {"proud", 1.0}, {"pride", 1.0}, {"wonderful", 1.5},
		{"amazing", 1.5}, {"fantastic", 1.5}, {"great", 1.0}, {"excellent", 1.5},
		{"awesome", 1.5}, {"brilliant", 1.5}, {"delighted", 1.5}, {"delight", 1.0},
		{"grateful", 1.0}, {"gratitude", 1.0}, {"blessed", 1.0}, {"thrilled", 2.0},
		{"elated", 2.0}, {"cheerful", 1.0}, {"content", 1.0}, {"pleased", 1.0},
		{"glad", 1.0}, {"celebrating", 1.0}, {"celebrate", 1.0}, {"achievement", 1.0},
		{"accomplished", 1.0}, {"success", 1.0}, {"love", 1.0}, {"loved", 1.0},
		{"loving", 1.0}, {"beautiful", 1.0}, {"incredible", 1.5}, {"euphoric", 2.0},
		{"favorite", 1.0},
	},
	domain.EmotionSad: {
		{"sad", 1.0}, {"sadness", 1.0}, {"unhappy", 1.0}, {"down", 1.0},
		{"depressed", 1.5}, {"depression", 1.5}, {"disappointed", 1.0},
		{"disappointment", 1.0}, {"miserable", 1.5}, {"misery", 1.5},
		{"grief", 2.0}, {"grieving", 2.0}, {"heartbroken", 2.0}, {"devastated", 2.0},
		{"devastation", 2.0}, {"hopeless", 2.0}, {"hopelessness", 2.0},
		{"crying", 1.5}, {"cried", 1.5}, {"tears", 1.0}, {"lonely", 1.0},
		{"loneliness", 1.0}, {"loss", 1.0}, {"lost", 1.0}, {"empty", 1.0},
		{"emptiness", 1.0}, {"heavy", 1.0}, {"hurt", 1.0}, {"pain", 1.0},
		{"rejected", 1.0}, {"rejection", 1.0}, {"failure", 1.0}, {"failed", 1.0},
		{"worthless", 2.0}, {"helpless", 1.0}, {"gloomy", 1.0}, {"melancholy", 1.0},
		{"sorrow", 1.5}, {"sorrowful", 1.5}, {"suffering", 1.5}, {"suffer", 1.0},
		{"ache", 1.0}, {"aching", 1.0}, {"miss", 1.0}, {"missing", 1.0},
		{"missed", 1.0}, {"awful", 1.5}, {"terrible", 1.5},
	},
	domain.EmotionAnxious: {
		{"anxious", 1.5}, {"anxiety", 1.5}, {"worried", 1.0}, {"worry", 1.0},
		{"worrying", 1.0}, {"stress", 1.0}, {"stressed", 1.0}, {"stressful", 1.0},
		{"nervous", 1.0}, {"nervousness", 1.0}, {"overwhelmed", 1.5},
		{"overwhelming", 1.5}, {"panic", 2.0}, {"panicking", 2.0}, {"scared", 1.5},
		{"fear", 1.5}, {"fearful", 1.5}, {"afraid", 1.5}, {"dread", 2.0},
		{"dreading", 2.0}, {"tense", 1.0}, {"tension", 1.0}, {"uneasy", 1.0},
		{"unease", 1.0}, {"restless", 1.0}, {"restlessness", 1.0},
		{"uncertain", 1.0}, {"uncertainty", 1.0}, {"overthinking", 1.0},
		{"racing", 1.0}, {"overthink", 1.0},
	},
	domain.EmotionCalm: {
		{"calm", 1.0}, {"peaceful", 1.5}, {"peace", 1.5}, {"relaxed", 1.0},
		{"relaxing", 1.0}, {"relax", 1.0}, {"serene", 1.5}, {"serenity", 1.5},
		{"tranquil", 1.5}, {"tranquility", 1.5}, {"content", 1.0},
		{"contentment", 1.0}, {"comfortable", 1.0}, {"patient", 1.0},
		{"patience", 1.0}, {"grounded", 1.0}, {"present", 1.0}, {"mindful", 1.0},
		{"mindfulness", 1.0}, {"gentle", 1.0}, {"stillness", 1.0}, {"still", 1.0},
		{"quiet", 1.0}, {"steady", 1.0}, {"slow", 1.0}, {"breathe", 1.0},
		{"breathing", 1.0}, {"meditate", 1.0}, {"meditation", 1.0},
		{"balanced", 1.0}, {"harmony", 1.0}, {"ease", 1.0}, {"simple", 1.0},
	},
	domain.EmotionAngry: {
		{"angry", 1.0}, {"anger", 1.0}, {"furious", 2.0}, {"fury", 2.0},
		{"rage", 2.0}, {"raging", 2.0}, {"mad", 1.0}, {"frustrated", 1.5},
		{"frustration", 1.5}, {"irritated", 1.0}, {"irritation", 1.0},
		{"annoyed", 1.0}, {"annoyance", 1.0}, {"outraged", 2.0}, {"outrage", 2.0},
		{"infuriated", 2.0}, {"livid", 2.0}, {"fuming", 2.0}, {"resentful", 1.5},
		{"resentment", 1.5}, {"bitter", 1.0}, {"bitterness", 1.0},
		{"hostile", 1.5}, {"hatred", 2.0}, {"hate", 2.0}, {"disgusted", 1.5},
		{"disgust", 1.5},
	},
	domain.EmotionNeutral: {
		{"okay", 1.0}, {"fine", 1.0}, {"alright", 1.0}, {"regular", 1.0},
		{"normal", 1.0}, {"usual", 1.0}, {"average", 1.0}, {"ordinary", 1.0},
		{"standard", 1.0}, {"typical", 1.0}, {"moderate", 1.0}, {"uneventful", 1.0},
	},
}

// emotionPhrases son marcadores de dos palabras; se consultan antes que los
// unigramas para no contar dos veces sus componentes.
var emotionPhrases = map[domain.Emotion][]marker{
	domain.EmotionAnxious: {
		{"stressed out", 1.5}, {"on edge", 1.5}, {"freaking out", 2.0},
	},
	domain.EmotionSad: {
		{"broke down", 1.5}, {"fell apart", 1.5}, {"let down", 1.5},
		{"burned out", 1.5},
	},
	domain.EmotionAngry: {
		{"fed up", 1.5}, {"pissed off", 2.0}, {"sick of", 1.5},
	},
	domain.EmotionCalm: {
		{"at peace", 1.5}, {"at ease", 1.5}, {"slowed down", 1.0},
	},
}

// tieBreakOrder fija el desempate cuando dos emociones acumulan exactamente
// el mismo voto ponderado. El orden favorece las señales más accionables.
var tieBreakOrder = []domain.Emotion{
	domain.EmotionAnxious,
	domain.EmotionSad,
	domain.EmotionAngry,
	domain.EmotionHappy,
	domain.EmotionCalm,
	domain.EmotionNeutral,
}

// negators anula el voto de un marcador que aparece hasta dos tokens
// después. El token suelto "t" cubre las contracciones con n't, que el
// tokenizador parte en dos: "can't sleep" -> ["can", "t", "sleep"].
var negators = map[string]struct{}{
	"not": {}, "no": {}, "never": {}, "cannot": {}, "without": {},
	"hardly": {}, "barely": {}, "neither": {}, "nor": {}, "t": {},
}

var stopWords = map[string]struct{}{
	"the": {}, "and": {}, "for": {}, "are": {}, "but": {}, "not": {},
	"you": {}, "all": {}, "can": {}, "had": {}, "her": {}, "was": {},
	"one": {}, "our": {}, "out": {}, "day": {}, "get": {}, "has": {},
	"him": {}, "his": {}, "how": {}, "its": {}, "may": {}, "now": {},
	"off": {}, "old": {}, "own": {}, "say": {}, "she": {}, "too": {},
	"use": {}, "way": {}, "who": {}, "with": {}, "this": {}, "that": {},
	"have": {}, "from": {}, "they": {}, "will": {}, "been": {}, "were": {},
	"said": {}, "each": {}, "which": {}, "their": {}, "there": {},
	"what": {}, "when": {}, "where": {}, "would": {}, "make": {},
	"like": {}, "into": {}, "just": {}, "know": {}, "take": {},
	"than": {}, "them": {}, "well": {}, "also": {}, "back": {},
	"after": {}, "even": {}, "most": {}, "such": {}, "through": {},
	"those": {}, "then": {}, "about": {}, "should": {}, "since": {},
	"could": {}, "still": {}, "really": {}, "today": {}, "because": {},
	"right": {}, "always": {}, "never": {}, "every": {}, "feel": {},
	"feels": {}, "felt": {}, "seem": {}, "seems": {}, "seemed": {},
	"think": {}, "thought": {}, "trying": {}, "tried": {}, "want": {},
	"wanted": {}, "went": {}, "made": {}, "came": {}, "woke": {},
	"spent": {}, "couldn": {}, "didn": {}, "doesn": {}, "isn": {},
	"wasn": {}, "hasn": {}, "haven": {}, "hadn": {}, "myself": {},
	"yourself": {}, "himself": {}, "herself": {}, "itself": {},
	"sometimes": {}, "something": {}, "anything": {}, "nothing": {},
	"everything": {}, "though": {}, "although": {}, "while": {},
	"until": {}, "unless": {}, "pass": {}, "must": {}, "much": {},
	"many": {}, "more": {}, "some": {}, "same": {}, "very": {},
	"being": {}, "going": {}, "doing": {}, "thing": {}, "things": {},
}

type markerDef struct {
	emotion domain.Emotion
	weight  float64
}

// Índices token -> definiciones, construidos una vez en init. Solo lectura
// después de eso.
var (
	unigramIndex map[string][]markerDef
	bigramIndex  map[string][]markerDef
)

func init() {
	unigramIndex = make(map[string][]markerDef)
	bigramIndex = make(map[string][]markerDef)
	// Se recorre AllEmotions (orden fijo) y no los mapas, para que el orden
	// dentro de cada lista de definiciones sea estable entre ejecuciones.
	for _, e := range domain.AllEmotions {
		for _, m := range emotionMarkers[e] {
			unigramIndex[m.word] = append(unigramIndex[m.word], markerDef{emotion: e, weight: m.weight})
		}
		for _, m := range emotionPhrases[e] {
			bigramIndex[m.word] = append(bigramIndex[m.word], markerDef{emotion: e, weight: m.weight})
		}
	}
}

// markerMatch es una ocurrencia concreta de un marcador dentro del texto.
type markerMatch struct {
	token   string
	emotion domain.Emotion
	weight  float64
	pos     int
	negated bool
}

// matchMarkers recorre los tokens y devuelve cada marcador encontrado, en
// orden de aparición. Las frases de dos palabras consumen sus tokens para
// que los unigramas no los vuelvan a contar.
func matchMarkers(tokens []string) []markerMatch {
	consumed := make([]bool, len(tokens))
	var matches []markerMatch

	for i := 0; i+1 < len(tokens); i++ {
		key := tokens[i] + " " + tokens[i+1]
		defs, ok := bigramIndex[key]
		if !ok {
			continue
		}
		negated := negatedAt(tokens, i)
		for _, d := range defs {
			matches = append(matches, markerMatch{token: key, emotion: d.emotion, weight: d.weight, pos: i, negated: negated})
		}
		consumed[i], consumed[i+1] = true, true
		i++
	}

	for i, tok := range tokens {
		if consumed[i] {
			continue
		}
		defs, ok := unigramIndex[tok]
		if !ok {
			continue
		}
		negated := negatedAt(tokens, i)
		for _, d := range defs {
			matches = append(matches, markerMatch{token: tok, emotion: d.emotion, weight: d.weight, pos: i, negated: negated})
		}
	}

	sort.SliceStable(matches, func(a, b int) bool { return matches[a].pos < matches[b].pos })
	return matches
}

func negatedAt(tokens []string, pos int) bool {
	for j := pos - 1; j >= 0 && j >= pos-2; j-- {
		if _, ok := negators[tokens[j]]; ok {
			return true
		}
	}
	return false
}

// emotionVotes acumula el peso de los marcadores no negados por emoción.
func emotionVotes(matches []markerMatch) map[domain.Emotion]float64 {
	votes := make(map[domain.Emotion]float64)
	for _, m := range matches {
		if m.negated {
			continue
		}
		votes[m.emotion] += m.weight
	}
	return votes
}

// emotionMatchCounts cuenta marcadores no negados por emoción, sin pesos.
// El validador usa conteos crudos para sus fórmulas de intensidad.
func emotionMatchCounts(matches []markerMatch) map[domain.Emotion]int {
	counts := make(map[domain.Emotion]int)
	for _, m := range matches {
		if m.negated {
			continue
		}
		counts[m.emotion]++
	}
	return counts
}

// lexicalScore proyecta un conteo de marcadores al rango de puntaje de la
// emoción: más coincidencias empujan el puntaje hacia el extremo del rango
// (más positivo para emociones positivas, más negativo para negativas).
func lexicalScore(e domain.Emotion, matchCount int) (score, confidence float64) {
	lo, hi := e.ScoreRange()
	intensity := math.Min(1.0, float64(matchCount)/5.0)

	switch {
	case e.Polarity() > 0:
		score = lo + (hi-lo)*intensity
	case e.Polarity() < 0:
		score = hi + (lo-hi)*intensity
	default:
		score = 0.0
	}
	score = math.Round(score*100) / 100

	confidence = math.Min(0.90, 0.55+0.08*float64(matchCount))
	return score, confidence
}

// contentWords devuelve tokens significativos (largos, alfabéticos y fuera
// de la lista de stopwords), sin duplicados y en orden de aparición.
func contentWords(tokens []string) []string {
	seen := make(map[string]struct{})
	var words []string
	for _, tok := range tokens {
		if len(tok) <= 4 || !isAlphaToken(tok) {
			continue
		}
		if _, stop := stopWords[tok]; stop {
			continue
		}
		if _, dup := seen[tok]; dup {
			continue
		}
		seen[tok] = struct{}{}
		words = append(words, tok)
	}
	return words
}
