package similarity

import (
	"regexp"
	"sort"
	"strings"
)

// EntityExtractor extracts named entities (people, organizations) from text.
// 리졸버/평가기 로직을 건드리지 않고 실제 NER 모델로 교체할 수 있도록
// 인터페이스 뒤에 둔다.
type EntityExtractor interface {
	Extract(title, content string) []string
}

// RuleBasedExtractor 는 규칙 기반의 가벼운 개체 추출기다.
// 고정 성씨 목록과 기관 접미사 패턴에 의존하므로 누락(false negative)이
// 당연히 발생한다. NLP 모델이 아니라 휴리스틱이다.
type RuleBasedExtractor struct{}

func NewRuleBasedExtractor() *RuleBasedExtractor {
	return &RuleBasedExtractor{}
}

var (
	quotedSpanRegex = regexp.MustCompile(`"[^"]*"`)

	// 직함이 뒤따르는 인물명: 강선우 의원, 이진숙 장관 ...
	personRegex = regexp.MustCompile(`([가-힣]+)\s*(대통령|장관|의원|후보자|위원장|대표|총리)`)

	// 정부기관/정당/조직 접미사
	agencyRegex = regexp.MustCompile(`[가-힣]+부|[가-힣]+청|[가-힣]+위원회`)
	partyRegex  = regexp.MustCompile(`[가-힣]+당`)
	orgRegex    = regexp.MustCompile(`[가-힣]+공항|[가-힣]+항공`)

	// 띄어쓰기 없는 2~3글자 이름 후보 (구분자가 바로 뒤따르는 경우만)
	nameRegex = regexp.MustCompile(`([가-힣]{2,3})[\s,.]`)
)

// commonSurnames 는 3글자 인명 추출에 쓰는 일반적인 성씨 목록이다.
const commonSurnames = "김이박최정강조윤장임"

// Extract returns deduplicated entities found in title and content.
// 인용부호 안의 내용은 발화 인용이 개체로 오인되지 않도록 제거한다.
func (e *RuleBasedExtractor) Extract(title, content string) []string {
	text := quotedSpanRegex.ReplaceAllString(title+" "+content, "")

	seen := make(map[string]bool)
	var entities []string
	add := func(entity string) {
		if entity != "" && !seen[entity] {
			seen[entity] = true
			entities = append(entities, entity)
		}
	}

	for _, match := range personRegex.FindAllStringSubmatch(text, -1) {
		add(match[1])
	}
	for _, match := range agencyRegex.FindAllString(text, -1) {
		add(match)
	}
	for _, match := range partyRegex.FindAllString(text, -1) {
		add(match)
	}
	for _, match := range orgRegex.FindAllString(text, -1) {
		add(match)
	}

	for _, match := range nameRegex.FindAllStringSubmatch(text, -1) {
		name := []rune(match[1])
		if len(name) == 3 && strings.ContainsRune(commonSurnames, name[0]) {
			add(match[1])
		}
	}

	sort.Strings(entities)
	return entities
}
