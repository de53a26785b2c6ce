package extract

import (
	"reflect"
	"testing"
)

const sampleDoc = `<!DOCTYPE html>
<html lang="en">
<head>
<style>
  .header {
    color: red;
  }
  #app {
    display: flex;
    flex-direction: column;
  }
</style>
</head>
<body>
<div id="app" class="container main">
  <span class="header">Hello</span>
  <a href="#top" id="top-link">Top</a>
</div>
<script>
  const app = document.getElementById("app");
  const missing = document.querySelector("#sidebar");
  document.querySelectorAll("#top-link");
</script>
</body>
</html>`

func TestScan(t *testing.T) {
	refs := Scan(sampleDoc)

	if want := []string{"app", "top-link"}; !reflect.DeepEqual(refs.IDs, want) {
		t.Errorf("IDs = %v, want %v", refs.IDs, want)
	}
	if want := []string{"container", "header", "main"}; !reflect.DeepEqual(refs.Classes, want) {
		t.Errorf("Classes = %v, want %v", refs.Classes, want)
	}
	if want := []string{"app", "sidebar", "top-link"}; !reflect.DeepEqual(refs.DOMCalls, want) {
		t.Errorf("DOMCalls = %v, want %v", refs.DOMCalls, want)
	}
	if want := []string{"color", "display", "flex-direction"}; !reflect.DeepEqual(refs.CSSProperties, want) {
		t.Errorf("CSSProperties = %v, want %v", refs.CSSProperties, want)
	}

	for _, tag := range []string{"html", "head", "style", "body", "div", "span", "a", "script"} {
		found := false
		for _, got := range refs.Tags {
			if got == tag {
				found = true
			}
		}
		if !found {
			t.Errorf("expected tag %q in %v", tag, refs.Tags)
		}
	}
}

func TestScanFoldsTagCase(t *testing.T) {
	refs := Scan(`<DIV ID="x"><SPAN>y</SPAN></DIV>`)
	if want := []string{"div", "span"}; !reflect.DeepEqual(refs.Tags, want) {
		t.Errorf("Tags = %v, want %v", refs.Tags, want)
	}
}

func TestScanEmptyDocument(t *testing.T) {
	refs := Scan("")
	if len(refs.IDs)+len(refs.Classes)+len(refs.DOMCalls)+len(refs.Tags)+len(refs.CSSProperties) != 0 {
		t.Errorf("expected empty references, got %+v", refs)
	}
}
