package scraper

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"

	"github.com/pribylovaa/go-letter-insights/internal/models"
)

// urlDatePattern — сегмент /YYYY/MM/ в канонической ссылке публикации.
var urlDatePattern = regexp.MustCompile(`/(\d{4})/(\d{2})/`)

// navTitles — тексты служебных ссылок, которые не являются записями.
var navTitles = map[string]struct{}{
	"economic letter":          {},
	"read the economic letter": {},
}

// Extractor — разбор полуструктурированной разметки источника.
//
// Детерминирован: повторный разбор той же разметки даёт тот же результат.
type Extractor struct {
	base *url.URL
	// sectionMarker — сегмент пути, отличающий ссылки на публикации
	// от прочей навигации (последний сегмент base_url).
	sectionMarker string
}

// NewExtractor создаёт экстрактор для заданного базового URL раздела.
func NewExtractor(baseURL string) (*Extractor, error) {
	base, err := url.Parse(baseURL)
	if err != nil || !base.IsAbs() {
		return nil, fmt.Errorf("extractor: base url must be absolute: %q", baseURL)
	}

	marker := ""
	for _, seg := range strings.Split(strings.Trim(base.Path, "/"), "/") {
		if seg != "" {
			marker = seg
		}
	}
	if marker == "" {
		return nil, fmt.Errorf("extractor: base url has no path section: %q", baseURL)
	}

	return &Extractor{base: base, sectionMarker: marker}, nil
}

// ParseListPage разбирает страницу списка публикаций.
//
// Возвращает записи в порядке появления в разметке и упорядоченный список
// нефатальных ошибок извлечения. Запись без обязательного поля (заголовок
// или ссылка) отбрасывается с записанной ошибкой; ошибка разбора даты
// понижается до нулевой даты без отбрасывания записи. Полностью
// неожиданная разметка даёт пустой список плюс одну ошибку разбора —
// паники и невозвратных сбоев не бывает.
func (e *Extractor) ParseListPage(html string) ([]models.Letter, []models.IngestError) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, []models.IngestError{{
			Stage:   models.StageExtract,
			Message: fmt.Sprintf("parse list page: %v", err),
		}}
	}

	var (
		letters []models.Letter
		errs    []models.IngestError
		seen    = map[string]struct{}{}
	)

	doc.Find("a[href]").Each(func(_ int, link *goquery.Selection) {
		href, _ := link.Attr("href")
		if href == "" || !strings.Contains(href, e.sectionMarker) {
			return
		}

		canonical, ok := e.canonicalURL(href)
		if !ok {
			return
		}
		if _, dup := seen[canonical]; dup {
			return
		}

		title := strings.TrimSpace(link.Text())
		if _, nav := navTitles[strings.ToLower(title)]; nav {
			// Служебная навигация, не запись.
			return
		}
		if title == "" {
			seen[canonical] = struct{}{}
			errs = append(errs, models.IngestError{
				URL:     canonical,
				Stage:   models.StageExtract,
				Message: "entry has no title",
			})
			return
		}

		seen[canonical] = struct{}{}

		letters = append(letters, models.Letter{
			Title:       title,
			URL:         canonical,
			PublishedAt: publicationDate(canonical),
			Summary:     entrySummary(link, title),
		})
	})

	if len(letters) == 0 && len(errs) == 0 && looksUnexpected(doc) {
		errs = append(errs, models.IngestError{
			Stage:   models.StageExtract,
			Message: "list page has no recognizable entries (markup drift?)",
		})
	}

	return letters, errs
}

// canonicalURL нормализует ссылку записи к абсолютной канонической форме.
// Отсеивает пагинацию и ссылку на сам раздел.
func (e *Extractor) canonicalURL(href string) (string, bool) {
	ref, err := url.Parse(href)
	if err != nil {
		return "", false
	}

	abs := e.base.ResolveReference(ref)
	abs.Fragment = ""
	abs.RawQuery = ""

	if strings.Contains(abs.Path, "/page/") {
		return "", false
	}
	// Сам раздел (с/без завершающего слэша) — не запись.
	if strings.TrimRight(abs.Path, "/") == strings.TrimRight(e.base.Path, "/") {
		return "", false
	}

	return abs.String(), true
}

// publicationDate извлекает дату публикации из сегмента /YYYY/MM/ ссылки.
// При неудаче возвращает нулевое время: дата нужна для показа и сортировки,
// ключом дедупликации не является.
func publicationDate(canonical string) time.Time {
	m := urlDatePattern.FindStringSubmatch(canonical)
	if m == nil {
		return time.Time{}
	}

	t, err := time.Parse("2006-01", m[1]+"-"+m[2])
	if err != nil {
		return time.Time{}
	}
	return t.UTC()
}

// entrySummary ищет анонс записи в ближайшем контейнере ссылки.
func entrySummary(link *goquery.Selection, title string) string {
	parent := link.Closest("div, section, li")
	if parent.Length() == 0 {
		return ""
	}

	summary := strings.TrimSpace(parent.Find("p").First().Text())
	if summary == title {
		return ""
	}
	return summary
}

// looksUnexpected — эвристика «разметка не похожа на страницу списка»:
// в документе вообще нет ссылок.
func looksUnexpected(doc *goquery.Document) bool {
	return doc.Find("a[href]").Length() == 0
}

// detailSelectors — известные контейнеры основного текста публикации,
// в порядке приоритета.
var detailSelectors = []string{"div.entry-content", "article", "main"}

// ParseDetailPage извлекает полный текст публикации со страницы детали.
//
// Сначала пробует известные контейнеры, затем go-readability как
// запасной вариант на случай редизайна. Пустая строка — извлечь не удалось;
// вызывающая сторона трактует это как частичный, нефатальный сбой.
func (e *Extractor) ParseDetailPage(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err == nil {
		for _, sel := range detailSelectors {
			container := doc.Find(sel).First()
			if container.Length() == 0 {
				continue
			}

			container.Find("script, style, noscript").Remove()
			if text := normalizeText(container.Text()); text != "" {
				return text
			}
		}
	}

	article, rerr := readability.FromReader(strings.NewReader(html), e.base)
	if rerr != nil {
		return ""
	}
	return normalizeText(article.TextContent)
}

// normalizeText схлопывает пустые строки и обрезает пробелы по краям строк.
func normalizeText(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}
