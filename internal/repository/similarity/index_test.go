package similarity

import (
	"reflect"
	"testing"

	"github.com/Dai-S2/PI---1-MLOps/internal/domain/movie"
	"github.com/Dai-S2/PI---1-MLOps/internal/domain/search/result"
)

func toyCorpus() []movie.Description {
	return []movie.Description{
		{Title: "Toy Story", Text: "cowboy doll toy feels threatened jealous spaceman toy arrives bedroom"},
		{Title: "Jumanji", Text: "siblings discover magical board game jungle creatures released"},
		{Title: "Grumpier Old Men", Text: "feuding neighbors fishing lake romance rivalry"},
		{Title: "Waiting to Exhale", Text: "women friends relationships heartbreak support"},
		{Title: "Father of the Bride Part II", Text: "father copes wife pregnant daughter pregnant"},
		{Title: "Heat", Text: "detective hunts professional thief crew los angeles"},
		{Title: "Toy Story 2", Text: "cowboy doll toy stolen collector friends rescue toy"},
		{Title: "Sabrina", Text: "chauffeur daughter romance wealthy brothers"},
		{Title: "Tom and Huck", Text: "boys witness murder river town adventure"},
		{Title: "Sudden Death", Text: "fire marshal hockey game terrorists hostage"},
	}
}

func TestRecommend_ToyStory(t *testing.T) {
	idx := Build(toyCorpus(), DefaultConfig())

	got, ok := idx.Recommend("Toy Story", 5)
	if !ok {
		t.Fatal("Toy Story should be indexed")
	}
	if len(got) != 5 {
		t.Fatalf("expected 5 recommendations, got %d", len(got))
	}
	for _, r := range got {
		if r.Title() == "Toy Story" || r.Position() == 0 {
			t.Errorf("query row returned in its own recommendations: %+v", r)
		}
	}
	if got[0].Title() != "Toy Story 2" {
		t.Errorf("expected Toy Story 2 first, got %q", got[0].Title())
	}
	for i := 1; i < len(got); i++ {
		if got[i].Score() > got[i-1].Score() {
			t.Errorf("results not in descending order at %d", i)
		}
	}
}

func TestRecommend_NotFound(t *testing.T) {
	idx := Build(toyCorpus(), DefaultConfig())
	if _, ok := idx.Recommend("Toy Story 3", 5); ok {
		t.Error("unknown title should not resolve")
	}
}

func TestRecommend_TitleCase(t *testing.T) {
	exact := Build(toyCorpus(), DefaultConfig())
	if _, ok := exact.Resolve("toy story"); ok {
		t.Error("exact matching should not fold case")
	}

	cfg := DefaultConfig()
	cfg.CaseInsensitiveTitles = true
	folded := Build(toyCorpus(), cfg)
	row, ok := folded.Resolve("TOY STORY")
	if !ok || row != 0 {
		t.Errorf("Resolve = %d, %v; want 0, true", row, ok)
	}
}

func TestResolve_DuplicateTitleUsesFirstRow(t *testing.T) {
	docs := []movie.Description{
		{Title: "Alpha", Text: "river boat captain"},
		{Title: "Beta", Text: "space station crew"},
		{Title: "Gamma", Text: "desert caravan trader"},
		{Title: "Clone", Text: "scientist copies herself laboratory"},
		{Title: "Delta", Text: "mountain climber storm"},
		{Title: "Epsilon", Text: "laboratory scientist experiment"},
		{Title: "Zeta", Text: "jazz musician club"},
		{Title: "Clone", Text: "soldier army cloned warriors"},
	}
	idx := Build(docs, DefaultConfig())

	if pos := idx.Positions("Clone"); !reflect.DeepEqual(pos, []int{3, 7}) {
		t.Fatalf("Positions = %v", pos)
	}
	first := titlesOf(t, idx, "Clone")
	for i := 0; i < 3; i++ {
		row, _ := idx.Resolve("Clone")
		if row != 3 {
			t.Fatalf("Resolve = %d, want 3", row)
		}
		if again := titlesOf(t, idx, "Clone"); !reflect.DeepEqual(again, first) {
			t.Fatalf("recommendations changed between calls: %v vs %v", first, again)
		}
	}
	if first[0] != "Epsilon" {
		t.Errorf("expected Epsilon first for the lab clone, got %v", first)
	}
}

func TestSimilar_StableTieBreak(t *testing.T) {
	docs := []movie.Description{
		{Title: "Q", Text: "orchard"},
		{Title: "A", Text: "glacier"},
		{Title: "B", Text: "volcano"},
		{Title: "C", Text: "orchard harvest"},
		{Title: "D", Text: "canyon"},
		{Title: "E", Text: "lagoon"},
		{Title: "F", Text: "tundra"},
		{Title: "G", Text: "savanna"},
	}
	idx := Build(docs, DefaultConfig())

	got := result.Titles(idx.Similar(0, 5))
	want := []string{"C", "A", "B", "D", "E"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Similar = %v, want %v", got, want)
	}
}

func TestSimilar_IdenticalDuplicateExcludesOnlyQueryRow(t *testing.T) {
	docs := []movie.Description{
		{Title: "Twin", Text: "lighthouse keeper storm"},
		{Title: "Twin", Text: "lighthouse keeper storm"},
		{Title: "Other", Text: "bakery pastry chef"},
	}
	idx := Build(docs, DefaultConfig())

	got := idx.Similar(0, 5)
	if len(got) != 2 {
		t.Fatalf("expected 2 results, got %d", len(got))
	}
	if got[0].Position() != 1 {
		t.Errorf("expected the duplicate row first, got position %d", got[0].Position())
	}
}

func TestSimilar_SmallCatalog(t *testing.T) {
	one := Build([]movie.Description{{Title: "Solo", Text: "lonely astronaut"}}, DefaultConfig())
	got, ok := one.Recommend("Solo", 5)
	if !ok {
		t.Fatal("Solo should resolve")
	}
	if len(got) != 0 {
		t.Errorf("expected no recommendations, got %v", got)
	}

	three := Build(toyCorpus()[:3], DefaultConfig())
	got, _ = three.Recommend("Jumanji", 5)
	if len(got) != 2 {
		t.Errorf("expected 2 recommendations, got %d", len(got))
	}
}

func TestSimilar_OutOfRange(t *testing.T) {
	idx := Build(toyCorpus(), DefaultConfig())
	if got := idx.Similar(-1, 5); got != nil {
		t.Errorf("Similar(-1) = %v", got)
	}
	if got := idx.Similar(idx.Len(), 5); got != nil {
		t.Errorf("Similar(len) = %v", got)
	}
	if got := idx.Similar(0, 0); got != nil {
		t.Errorf("Similar(k=0) = %v", got)
	}
}

func TestBuild_Deterministic(t *testing.T) {
	a := Build(toyCorpus(), DefaultConfig())
	b := Build(toyCorpus(), DefaultConfig())

	if a.Len() != b.Len() || a.VocabularySize() != b.VocabularySize() {
		t.Fatalf("sizes differ: %d/%d vs %d/%d", a.Len(), a.VocabularySize(), b.Len(), b.VocabularySize())
	}
	for i := 0; i < a.Len(); i++ {
		if !a.Vector(i).Equal(b.Vector(i)) {
			t.Errorf("vector %d differs", i)
		}
	}
	if !reflect.DeepEqual(titlesOf(t, a, "Toy Story"), titlesOf(t, b, "Toy Story")) {
		t.Error("recommendations differ between builds")
	}
	if a.Fingerprint() != b.Fingerprint() {
		t.Error("fingerprints differ between builds")
	}
}

func TestFingerprint_ChangesWithInput(t *testing.T) {
	base := Build(toyCorpus(), DefaultConfig())

	docs := toyCorpus()
	docs[1].Text += " stampede"
	if Build(docs, DefaultConfig()).Fingerprint() == base.Fingerprint() {
		t.Error("fingerprint should change with corpus text")
	}

	cfg := DefaultConfig()
	cfg.NgramMax = 1
	if Build(toyCorpus(), cfg).Fingerprint() == base.Fingerprint() {
		t.Error("fingerprint should change with settings")
	}
}

func TestTitleAndVocabulary(t *testing.T) {
	idx := Build(toyCorpus(), DefaultConfig())
	if idx.Title(5) != "Heat" {
		t.Errorf("Title(5) = %q", idx.Title(5))
	}
	if idx.VocabularySize() == 0 {
		t.Error("vocabulary should not be empty")
	}
}

func titlesOf(t *testing.T, idx *Index, title string) []string {
	t.Helper()
	got, ok := idx.Recommend(title, 5)
	if !ok {
		t.Fatalf("%q not indexed", title)
	}
	return result.Titles(got)
}
