package segment

import (
	"testing"

	"github.com/jackzampolin/spine/internal/types"
)

// mkChapters builds a contiguous chapter list from page ranges.
func mkChapters(ranges ...[2]int) []types.Chapter {
	chapters := make([]types.Chapter, len(ranges))
	for i, r := range ranges {
		chapters[i] = types.Chapter{Number: i + 1, StartPage: r[0], EndPage: r[1]}
	}
	return chapters
}

func evenChapters(count, pagesEach int) []types.Chapter {
	chapters := make([]types.Chapter, count)
	for i := range chapters {
		chapters[i] = types.Chapter{
			Number:    i + 1,
			StartPage: i*pagesEach + 1,
			EndPage:   (i + 1) * pagesEach,
		}
	}
	return chapters
}

func TestValidate(t *testing.T) {
	s := newTestSegmenter(t, nil) // MinChapters 2, MaxChapters 20, MinPages 4

	tests := []struct {
		name     string
		chapters []types.Chapter
		numPages int
		want     bool
	}{
		{
			name:     "well-formed",
			chapters: mkChapters([2]int{1, 10}, [2]int{11, 20}, [2]int{21, 30}),
			numPages: 30,
			want:     true,
		},
		{
			name:     "empty",
			chapters: nil,
			numPages: 30,
			want:     false,
		},
		{
			name:     "single chapter allowed for small book",
			chapters: mkChapters([2]int{1, 30}),
			numPages: 30,
			want:     true,
		},
		{
			name:     "too few chapters for large book",
			chapters: mkChapters([2]int{1, 100}),
			numPages: 100,
			want:     false,
		},
		{
			name:     "more than max chapters",
			chapters: evenChapters(21, 10),
			numPages: 210,
			want:     false,
		},
		{
			name:     "over-segmented large book",
			chapters: evenChapters(15, 4), // 60 pages, 4 pages per chapter
			numPages: 60,
			want:     false,
		},
		{
			name:     "average rule skipped below page floor",
			chapters: evenChapters(10, 4), // same density, 40-page book
			numPages: 40,
			want:     true,
		},
		{
			name:     "front matter tolerated",
			chapters: mkChapters([2]int{10, 20}, [2]int{21, 30}),
			numPages: 30,
			want:     true,
		},
		{
			name:     "first chapter starts too late",
			chapters: mkChapters([2]int{11, 20}, [2]int{21, 30}),
			numPages: 30,
			want:     false,
		},
		{
			name:     "gap of five allowed",
			chapters: mkChapters([2]int{1, 10}, [2]int{16, 30}),
			numPages: 30,
			want:     true,
		},
		{
			name:     "gap of six rejected",
			chapters: mkChapters([2]int{1, 10}, [2]int{17, 30}),
			numPages: 30,
			want:     false,
		},
		{
			name:     "overlapping chapters rejected",
			chapters: mkChapters([2]int{1, 12}, [2]int{10, 30}),
			numPages: 30,
			want:     false,
		},
		{
			name:     "inverted range rejected",
			chapters: mkChapters([2]int{1, 10}, [2]int{20, 15}),
			numPages: 30,
			want:     false,
		},
		{
			name:     "short non-final chapter rejected",
			chapters: mkChapters([2]int{1, 1}, [2]int{2, 30}),
			numPages: 30,
			want:     false,
		},
		{
			name:     "one-page final chapter allowed",
			chapters: mkChapters([2]int{1, 15}, [2]int{16, 29}, [2]int{30, 30}),
			numPages: 30,
			want:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.validate(tt.chapters, tt.numPages); got != tt.want {
				t.Errorf("validate() = %v, want %v", got, tt.want)
			}
		})
	}
}
