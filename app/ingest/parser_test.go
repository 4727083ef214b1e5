package ingest

import (
	"testing"
	"time"
)

func testConfig() *Config {
	return &Config{
		Name: "technews",
		URL:  "https://example.com/rss.xml",
		Settings: ConfigSettings{
			Enabled:  true,
			MaxItems: 100,
		},
	}
}

func TestParseRSS2(t *testing.T) {
	rssData := `<?xml version="1.0"?>
<rss version="2.0">
  <channel>
    <title>Tech News Daily</title>
    <link>https://example.com</link>
    <description>Technology news</description>
    <item>
      <title>New Breakthrough in Quantum Computing</title>
      <link>https://example.com/item1</link>
      <description>Researchers announce a major advance.</description>
      <pubDate>Mon, 03 Jul 2023 10:00:00 GMT</pubDate>
    </item>
    <item>
      <title>Markets Rally on Tech Earnings</title>
      <link>https://example.com/item2</link>
      <description>Stocks climbed on strong results.</description>
      <pubDate>Mon, 03 Jul 2023 11:00:00 GMT</pubDate>
    </item>
  </channel>
</rss>`

	parser := NewParser()
	articles, err := parser.Run([]byte(rssData), testConfig())
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if len(articles) != 2 {
		t.Fatalf("Expected 2 articles, got: %d", len(articles))
	}

	article := articles[0]
	if article.Title != "New Breakthrough in Quantum Computing" {
		t.Errorf("Expected title 'New Breakthrough in Quantum Computing', got: %s", article.Title)
	}
	if article.URL != "https://example.com/item1" {
		t.Errorf("Expected URL 'https://example.com/item1', got: %s", article.URL)
	}
	if article.Source != "Tech News Daily" {
		t.Errorf("Expected source 'Tech News Daily', got: %s", article.Source)
	}
	if article.SourceName != "technews" {
		t.Errorf("Expected source name 'technews', got: %s", article.SourceName)
	}
	if article.ID == "" {
		t.Error("Expected article id to be generated")
	}
	if len(article.Keywords) == 0 {
		t.Error("Expected keywords to be extracted from the title")
	}

	expected := time.Date(2023, 7, 3, 10, 0, 0, 0, time.UTC)
	if !article.PublishedAt.Equal(expected) {
		t.Errorf("Expected published at %v, got %v", expected, article.PublishedAt)
	}
}

func TestParserGeneratesStableIDs(t *testing.T) {
	rssData := `<?xml version="1.0"?>
<rss version="2.0">
  <channel>
    <title>Tech News Daily</title>
    <link>https://example.com</link>
    <item>
      <title>Stable Item</title>
      <link>https://example.com/item1</link>
    </item>
  </channel>
</rss>`

	parser := NewParser()

	first, err := parser.Run([]byte(rssData), testConfig())
	if err != nil {
		t.Fatal(err)
	}
	second, err := parser.Run([]byte(rssData), testConfig())
	if err != nil {
		t.Fatal(err)
	}

	if first[0].ID != second[0].ID {
		t.Errorf("Expected stable id across parses, got %s and %s", first[0].ID, second[0].ID)
	}
}

func TestParserFallsBackToConfigName(t *testing.T) {
	rssData := `<?xml version="1.0"?>
<rss version="2.0">
  <channel>
    <link>https://example.com</link>
    <item>
      <title>Untitled Feed Item</title>
      <link>https://example.com/item1</link>
    </item>
  </channel>
</rss>`

	parser := NewParser()
	articles, err := parser.Run([]byte(rssData), testConfig())
	if err != nil {
		t.Fatal(err)
	}

	if len(articles) != 1 {
		t.Fatalf("Expected 1 article, got %d", len(articles))
	}
	if articles[0].Source != "technews" {
		t.Errorf("Expected source to fall back to config name, got %s", articles[0].Source)
	}
}

func TestParserAppliesExcludes(t *testing.T) {
	rssData := `<?xml version="1.0"?>
<rss version="2.0">
  <channel>
    <title>Tech News Daily</title>
    <link>https://example.com</link>
    <item>
      <title>Sponsored: Buy Our Product</title>
      <link>https://example.com/ad</link>
    </item>
    <item>
      <title>Real News Item</title>
      <link>https://example.com/item1</link>
    </item>
  </channel>
</rss>`

	config := testConfig()
	config.Excludes = []string{"sponsored"}

	parser := NewParser()
	articles, err := parser.Run([]byte(rssData), config)
	if err != nil {
		t.Fatal(err)
	}

	if len(articles) != 1 {
		t.Fatalf("Expected 1 article after exclusion, got %d", len(articles))
	}
	if articles[0].Title != "Real News Item" {
		t.Errorf("Expected 'Real News Item', got %s", articles[0].Title)
	}
}

func TestParserRespectsMaxItems(t *testing.T) {
	rssData := `<?xml version="1.0"?>
<rss version="2.0">
  <channel>
    <title>Tech News Daily</title>
    <link>https://example.com</link>
    <item><title>One</title><link>https://example.com/1</link></item>
    <item><title>Two</title><link>https://example.com/2</link></item>
    <item><title>Three</title><link>https://example.com/3</link></item>
  </channel>
</rss>`

	config := testConfig()
	config.Settings.MaxItems = 2

	parser := NewParser()
	articles, err := parser.Run([]byte(rssData), config)
	if err != nil {
		t.Fatal(err)
	}

	if len(articles) != 2 {
		t.Errorf("Expected 2 articles, got %d", len(articles))
	}
}

func TestParserRejectsInvalidData(t *testing.T) {
	parser := NewParser()
	if _, err := parser.Run([]byte("not a feed"), testConfig()); err == nil {
		t.Error("Expected error for invalid feed data")
	}
}
