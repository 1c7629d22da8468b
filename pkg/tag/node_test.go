package tag_test

import (
	"errors"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-modelform/pkg/tag"
)

func TestNode_AttributeFirstWriteWins(t *testing.T) {
	node := tag.New("input").
		AddAttribute("name", "first").
		AddAttribute("name", "second").
		MergeAttribute("type", "text", false).
		MergeAttribute("type", "email", true)

	want := `<input name="first" type="email" />`
	if diff := cmp.Diff(want, node.String()); diff != "" {
		t.Fatalf("serialization mismatch (-want +got):\n%s", diff)
	}
}

func TestNode_ClassSetIsIdempotent(t *testing.T) {
	node := tag.New("div").
		AddAttribute("id", "x").
		AddClass("form-group", "  ").
		AddClass("form-group row").
		AddAttribute("title", "t").
		AddClassIf(false, "hidden").
		AddClassIf(true, "col")

	want := `<div id="x" class="form-group row col" title="t"></div>`
	if diff := cmp.Diff(want, node.String()); diff != "" {
		t.Fatalf("serialization mismatch (-want +got):\n%s", diff)
	}
	if got := node.Classes(); len(got) != 3 {
		t.Fatalf("expected 3 classes, got %v", got)
	}
}

func TestNode_EmptyClassListOmitsAttribute(t *testing.T) {
	node := tag.New("span").AddClass("", "   ")
	if got := node.String(); got != "<span></span>" {
		t.Fatalf("unexpected markup %q", got)
	}
	if _, ok := node.Attribute("class"); ok {
		t.Fatalf("expected no class attribute")
	}
}

func TestNode_ReplaceClassViaMerge(t *testing.T) {
	node := tag.New("i").AddClass("a b").MergeAttribute("class", "c", true)
	if got := node.String(); got != `<i class="c"></i>` {
		t.Fatalf("unexpected markup %q", got)
	}
}

func TestNode_ChildrenOverrideContent(t *testing.T) {
	node := tag.New("label").
		SetText("ignored").
		AddChild(tag.Text("A & B")).
		AddChild(tag.New("input").AddAttribute("type", "checkbox"))

	want := `<label>A &amp; B<input type="checkbox" /></label>`
	if diff := cmp.Diff(want, node.String()); diff != "" {
		t.Fatalf("serialization mismatch (-want +got):\n%s", diff)
	}
}

func TestNode_TextIsEscapedHTMLIsNot(t *testing.T) {
	text := tag.New("p").SetText("<b>")
	if got := text.String(); got != "<p>&lt;b&gt;</p>" {
		t.Fatalf("unexpected escaped markup %q", got)
	}
	raw := tag.New("p").SetHTML("<b>x</b>").AddContent("!").AddContentIfNotBlank("  ")
	if got := raw.String(); got != "<p><b>x</b>!</p>" {
		t.Fatalf("unexpected raw markup %q", got)
	}
}

func TestNode_SelfClosingNeverRendersChildren(t *testing.T) {
	node := tag.New("input").AddAttribute("value", `"quoted"`).AddChild(tag.New("span"))
	got := node.String()
	if strings.Contains(got, "</input>") || strings.Contains(got, "span") {
		t.Fatalf("self-closing tag rendered body: %q", got)
	}
	if got != `<input value="&#34;quoted&#34;" />` {
		t.Fatalf("unexpected markup %q", got)
	}
}

func TestNode_SerializationIsIdempotent(t *testing.T) {
	node := tag.New("select").AddAttribute("name", "x")
	node.AddChild(tag.New("option").AddAttribute("value", "1").SetText("One"))
	first := node.String()
	second := node.String()
	if first != second {
		t.Fatalf("expected identical output, got %q and %q", first, second)
	}
}

func TestNode_ConditionalVariants(t *testing.T) {
	called := false
	node := tag.New("div").
		AddAttributeIf(false, "hidden", "hidden").
		AddAttributeIfNotBlank("title", "  ").
		AddBoolAttributeIf(true, "required").
		AddChildIf(false, tag.New("span")).
		AddChildFunc(false, func() *tag.Node {
			called = true
			return tag.New("em")
		}).
		AddContentIf(true, "ok")

	if called {
		t.Fatalf("builder should not run when predicate is false")
	}
	if got := node.String(); got != `<div required="required">ok</div>` {
		t.Fatalf("unexpected markup %q", got)
	}
}

func TestForEach_SkipsNilChildren(t *testing.T) {
	list := tag.ForEach(tag.New("ul"), []string{"a", "", "b"}, func(item string) *tag.Node {
		if item == "" {
			return nil
		}
		return tag.New("li").SetText(item)
	})
	if got := list.String(); got != "<ul><li>a</li><li>b</li></ul>" {
		t.Fatalf("unexpected markup %q", got)
	}

	count := 0
	tag.Each(list, []int{1, 2}, func(i int, n *tag.Node) {
		count += i
		n.AddClass("item-" + strconv.Itoa(i))
	})
	if count != 3 || !list.HasClass("item-2") {
		t.Fatalf("Each did not visit every item")
	}
}

func TestAddAttributes_FormatterAndFallback(t *testing.T) {
	formatter := tag.FormatterFunc(func(value any) (string, bool) {
		switch v := value.(type) {
		case float64:
			return strings.Replace(strconv.FormatFloat(v, 'f', -1, 64), ".", ",", 1), true
		case time.Time:
			return v.Format("2006-01-02"), true
		}
		return "", false
	})

	node := tag.New("input").AddAttributes(formatter,
		tag.Attr{Key: "data-amount", Value: 1.5},
		tag.Attr{Key: "data-when", Value: time.Date(2024, 2, 3, 0, 0, 0, 0, time.UTC)},
		tag.Attr{Key: "data-count", Value: 7},
		tag.Attr{Key: "data-name", Value: "plain"},
		tag.Attr{Key: "data-count", Value: 8},
	)

	want := `<input data-amount="1,5" data-when="2024-02-03" data-count="7" data-name="plain" />`
	if diff := cmp.Diff(want, node.String()); diff != "" {
		t.Fatalf("serialization mismatch (-want +got):\n%s", diff)
	}

	plain := tag.New("input").AddAttributes(nil, tag.Attr{Key: "data-amount", Value: 1.5})
	if got, _ := plain.Attribute("data-amount"); got != "1.5" {
		t.Fatalf("expected fmt fallback, got %q", got)
	}
}

func TestAttrsFromMap_SortsKeys(t *testing.T) {
	attrs := tag.AttrsFromMap(map[string]any{"b": 2, "a": "1"})
	want := []tag.Attr{{Key: "a", Value: "1"}, {Key: "b", Value: 2}}
	if diff := cmp.Diff(want, attrs); diff != "" {
		t.Fatalf("attrs mismatch (-want +got):\n%s", diff)
	}
}

func TestInnerHTML(t *testing.T) {
	node := tag.New("fieldset").AddClass("display-group").AddAttribute("id", "g1")
	node.AddChild(tag.New("legend").SetText("Info"))
	node.AddChild(tag.New("div"))

	if got := tag.InnerHTML(node); got != "<legend>Info</legend><div></div>" {
		t.Fatalf("unexpected inner html %q", got)
	}

	input := tag.New("input").AddAttribute("type", "text")
	if got := tag.InnerHTML(input); got != input.String() {
		t.Fatalf("self-closing inner html should equal serialization, got %q", got)
	}

	empty := tag.New("div")
	if got := tag.InnerHTML(empty); got != "" {
		t.Fatalf("expected empty inner html, got %q", got)
	}
}

func TestCreate_RejectsInvalidNames(t *testing.T) {
	for _, name := range []string{"", "<div>", "dív", "1abc", "a b"} {
		if _, err := tag.Create(name); !errors.Is(err, tag.ErrInvalidName) {
			t.Fatalf("expected ErrInvalidName for %q, got %v", name, err)
		}
	}
	if _, err := tag.Create("my-element"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer func() {
		if recover() == nil {
			t.Fatalf("expected New to panic on invalid name")
		}
	}()
	tag.New("bad>")
}
