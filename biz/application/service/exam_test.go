package service

import (
	"testing"

	"exam-hall/biz/application/dto/exam/hall"
)

func TestKeywordMarksValid(t *testing.T) {
	tests := []struct {
		name     string
		keywords []*hall.KeywordMark
		marks    float64
		want     bool
	}{
		{
			name: "exact sum",
			keywords: []*hall.KeywordMark{
				{Keyword: "photosynthesis", Marks: 3},
				{Keyword: "chlorophyll", Marks: 2},
			},
			marks: 5,
			want:  true,
		},
		{
			name: "partial rubric",
			keywords: []*hall.KeywordMark{
				{Keyword: "photosynthesis", Marks: 3},
			},
			marks: 5,
			want:  true,
		},
		{
			name: "sum exceeds marks",
			keywords: []*hall.KeywordMark{
				{Keyword: "photosynthesis", Marks: 3},
				{Keyword: "chlorophyll", Marks: 3},
			},
			marks: 5,
			want:  false,
		},
		{
			// 0.1+0.2 != 0.3 in floats; the comparison must absorb that.
			name: "float noise at the boundary",
			keywords: []*hall.KeywordMark{
				{Keyword: "mitosis", Marks: 0.1},
				{Keyword: "meiosis", Marks: 0.2},
			},
			marks: 0.3,
			want:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := keywordMarksValid(tt.keywords, tt.marks); got != tt.want {
				t.Fatalf("keywordMarksValid(%s) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}
