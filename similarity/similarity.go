package similarity

import "strings"

// IdenticalTitleScore 는 제목이 공백 제거 후 완전히 같을 때 바로 반환하는 값이다.
const IdenticalTitleScore = 0.95

// Weights 는 종합 유사도(개체 중심) 가중치다. 합이 1이라고 가정한다.
type Weights struct {
	Entity    float64
	Keyword   float64
	TitleWord float64
}

// CacheWeights 는 캐시 재사용 판단용 가중치다.
type CacheWeights struct {
	Title   float64
	Keyword float64
}

func DefaultWeights() Weights {
	return Weights{Entity: 0.5, Keyword: 0.3, TitleWord: 0.2}
}

func DefaultCacheWeights() CacheWeights {
	return CacheWeights{Title: 0.3, Keyword: 0.7}
}

// Ratio returns a normalized character-sequence similarity in [0,1],
// 2*LCS/(len(a)+len(b)) over runes.
func Ratio(a, b string) float64 {
	ra := []rune(a)
	rb := []rune(b)
	if len(ra) == 0 && len(rb) == 0 {
		return 1
	}
	if len(ra) == 0 || len(rb) == 0 {
		return 0
	}

	// LCS over two rows
	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for i := 1; i <= len(ra); i++ {
		for j := 1; j <= len(rb); j++ {
			if ra[i-1] == rb[j-1] {
				curr[j] = prev[j-1] + 1
			} else if prev[j] >= curr[j-1] {
				curr[j] = prev[j]
			} else {
				curr[j] = curr[j-1]
			}
		}
		prev, curr = curr, prev
	}
	lcs := prev[len(rb)]
	return 2 * float64(lcs) / float64(len(ra)+len(rb))
}

// TitleSimilarity 는 소문자화한 제목의 문자열 유사도를 반환한다.
// 공백 제거 후 동일한 제목은 길이와 무관하게 IdenticalTitleScore 로 단락한다.
func TitleSimilarity(a, b string) float64 {
	if strings.TrimSpace(a) == strings.TrimSpace(b) {
		return IdenticalTitleScore
	}
	return Ratio(strings.ToLower(a), strings.ToLower(b))
}

// KeywordOverlap returns |A∩B| / min(|A|,|B|); 0 when either set is empty.
func KeywordOverlap(a, b []string) float64 {
	sa := toSet(a)
	sb := toSet(b)
	if len(sa) == 0 || len(sb) == 0 {
		return 0
	}
	inter := intersectCount(sa, sb)
	min := len(sa)
	if len(sb) < min {
		min = len(sb)
	}
	return float64(inter) / float64(min)
}

// Jaccard returns |A∩B| / |A∪B|; 0 when both sets are empty.
func Jaccard(a, b []string) float64 {
	sa := toSet(a)
	sb := toSet(b)
	if len(sa) == 0 && len(sb) == 0 {
		return 0
	}
	inter := intersectCount(sa, sb)
	union := len(sa) + len(sb) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

// TitleWordOverlap 는 제목을 공백 단위 토큰 집합으로 보고 Jaccard 를 계산한다.
func TitleWordOverlap(a, b string) float64 {
	return Jaccard(strings.Fields(a), strings.Fields(b))
}

// Score 는 두 기사의 종합 유사도를 계산한다 (0~1).
// 개체 겹침에 가장 높은 가중치를 둔다. 인물/조직이 겹치는지가
// 같은 사건을 다루는지에 대한 가장 강한 신호이기 때문이다.
func Score(titleA, titleB string, keywordsA, keywordsB, entitiesA, entitiesB []string, w Weights) float64 {
	if strings.TrimSpace(titleA) == strings.TrimSpace(titleB) {
		return IdenticalTitleScore
	}

	entitySim := KeywordOverlap(entitiesA, entitiesB)
	keywordSim := KeywordOverlap(keywordsA, keywordsB)
	titleSim := TitleWordOverlap(titleA, titleB)

	return entitySim*w.Entity + keywordSim*w.Keyword + titleSim*w.TitleWord
}

// CacheScore 는 캐시 재사용 판단용 유사도를 계산한다 (0~1).
func CacheScore(titleA, titleB string, keywordsA, keywordsB []string, w CacheWeights) float64 {
	return TitleSimilarity(titleA, titleB)*w.Title + KeywordOverlap(keywordsA, keywordsB)*w.Keyword
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		set[v] = struct{}{}
	}
	return set
}

func intersectCount(a, b map[string]struct{}) int {
	if len(b) < len(a) {
		a, b = b, a
	}
	n := 0
	for v := range a {
		if _, ok := b[v]; ok {
			n++
		}
	}
	return n
}
