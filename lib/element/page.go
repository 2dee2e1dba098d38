package element

import (
	"io"
	"strings"

	"github.com/cldimg/cldimg/fs"
	"github.com/cldimg/cldimg/fs/config/configmap"
	"github.com/pkg/errors"
	"golang.org/x/net/html"
)

// Names of the things looked for in a page
const (
	ConfigScriptID = "amp-cld-config"
	ElementName    = "amp-cld-img"
)

// Page is what was found in an HTML page
type Page struct {
	Config   configmap.Simple // nil if the page has no config
	Elements []Attributes     // in document order
}

// ParsePage finds the page config and the image elements in the HTML
// read from in.  The page isn't modified.
func ParsePage(in io.Reader) (*Page, error) {
	doc, err := html.Parse(in)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse HTML")
	}
	var (
		page    = new(Page)
		walk    func(*html.Node)
		walkErr error
	)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script":
				if attr(n, "id") == ConfigScriptID && page.Config == nil {
					page.Config, walkErr = ParseConfig(strings.NewReader(text(n)))
				}
			case ElementName:
				attrs := make(Attributes, len(n.Attr))
				for _, a := range n.Attr {
					attrs[a.Key] = a.Val
				}
				page.Elements = append(page.Elements, attrs)
			}
		}
		for c := n.FirstChild; c != nil && walkErr == nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	if walkErr != nil {
		return nil, walkErr
	}
	fs.Debugf(nil, "Found %d %s elements", len(page.Elements), ElementName)
	return page, nil
}

// Defaults returns the page config as snake_case options layered over
// defaults, which may be nil.
func (p *Page) Defaults(defaults configmap.Getter) configmap.Getter {
	m := configmap.New()
	if p.Config != nil {
		m.AddGetter(PageConfig(p.Config))
	}
	if defaults != nil {
		m.AddGetter(defaults)
	}
	return m
}

// Images resolves every element on the page.  The page config is
// layered over defaults, which may be nil.
func (p *Page) Images(defaults configmap.Getter) ([]*Image, error) {
	images := make([]*Image, 0, len(p.Elements))
	page := p.Defaults(defaults)
	for _, attrs := range p.Elements {
		img, err := New(attrs, page)
		if err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, nil
}

// attr returns the value of the attribute key of n or ""
func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// text returns the concatenated text children of n
func text(n *html.Node) string {
	var out strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			out.WriteString(c.Data)
		}
	}
	return out.String()
}
