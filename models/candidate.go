package models

// CandidateTopic 은 수집/키워드 추출 파이프라인이 넘겨주는 후보 주제다.
// Content 는 본문 휴리스틱 비교에 쓰는 원문 텍스트로, 비어 있을 수 있다.
type CandidateTopic struct {
	Title      string   `json:"title"`
	Keywords   []string `json:"keywords"`
	SourceURLs []string `json:"source_urls"`
	Content    string   `json:"content,omitempty"`
}

// ArticleData 는 기사 생성 파이프라인이 넘겨주는 버전 생성 입력이다.
type ArticleData struct {
	Title            string           `json:"title"`
	GeneratedTitle   string           `json:"generated_title,omitempty"`
	Keywords         []string         `json:"keywords"`
	Content          string           `json:"content,omitempty"`
	Tags             TopicTags        `json:"tags"`
	SourceArticles   []string         `json:"source_articles"`
	MainArticle      MainArticle      `json:"main_article"`
	GeneratedArticle string           `json:"generated_article,omitempty"`
	Analysis         map[string]any   `json:"analysis,omitempty"`
	RelatedArticles  []RelatedArticle `json:"related_articles,omitempty"`
}
