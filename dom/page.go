package dom

import "fmt"

// NavPage is a document laid out the way a navigation toggle expects it:
//
//	<body>
//	  <nav id="{navID}">
//	    <button class="{prefix}-toggle">
//	    <ul class="{prefix}-items">
//	      <li class="{prefix}-item">...</li>
//	    </ul>
//	  </nav>
//	</body>
type NavPage struct {
	Doc    *Document
	Nav    *Node
	Toggle *Node
	List   *Node
	Items  []*Node
}

// NewNavPage builds a NavPage with one list entry per label.
func NewNavPage(navID, classPrefix string, labels ...string) (*NavPage, error) {
	doc := NewDocument()
	body, _ := doc.Body()

	nav, err := doc.CreateElement(body, "nav", navID, classPrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to create nav element: %w", err)
	}
	toggle, err := doc.CreateElement(nav, "button", "", classPrefix+"-toggle")
	if err != nil {
		return nil, fmt.Errorf("failed to create toggle element: %w", err)
	}
	list, err := doc.CreateElement(nav, "ul", "", classPrefix+"-items")
	if err != nil {
		return nil, fmt.Errorf("failed to create item list: %w", err)
	}

	page := &NavPage{Doc: doc, Nav: nav, Toggle: toggle, List: list}
	for _, label := range labels {
		item, err := doc.CreateElement(list, "li", "", classPrefix+"-item")
		if err != nil {
			return nil, fmt.Errorf("failed to create item %q: %w", label, err)
		}
		if err := doc.SetText(item, label); err != nil {
			return nil, err
		}
		page.Items = append(page.Items, item)
	}
	return page, nil
}
