package confluence

// Page is a single wiki page as returned by the Confluence content API.
type Page struct {
	ID      string
	Title   string
	Body    string // storage-format HTML, present when fetched with expand=body.storage
	Version int
	WebUI   string // relative web link from _links.webui
}

// contentList is the paginated response envelope of /content and /content/search.
type contentList struct {
	Results []contentItem `json:"results"`
	Size    int           `json:"size"`
}

type contentItem struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Body  struct {
		Storage struct {
			Value string `json:"value"`
		} `json:"storage"`
	} `json:"body"`
	Version struct {
		Number int `json:"number"`
	} `json:"version"`
	Links struct {
		WebUI string `json:"webui"`
	} `json:"_links"`
}

func (c contentItem) toPage() Page {
	return Page{
		ID:      c.ID,
		Title:   c.Title,
		Body:    c.Body.Storage.Value,
		Version: c.Version.Number,
		WebUI:   c.Links.WebUI,
	}
}
