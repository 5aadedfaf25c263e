package host

import (
	"github.com/glintkit/glint/pkg/render"
	"github.com/glintkit/glint/pkg/vdom"
)

// liveClientJS is the minimal patch client embedded in element pages.
// It connects back to /live and applies patch frames by node identity.
const liveClientJS = `(function () {
  var root = document.querySelector("[data-glint-tag]");
  if (!root) return;
  var tag = root.getAttribute("data-glint-tag");
  var proto = location.protocol === "https:" ? "wss://" : "ws://";
  var ws = new WebSocket(proto + location.host + "/live?tag=" + tag);
  function byNid(nid) {
    return document.querySelector('[data-nid="' + nid + '"]');
  }
  ws.onmessage = function (msg) {
    var frame = JSON.parse(msg.data);
    if (frame.type === "ping") { ws.send('{"type":"pong"}'); return; }
    if (frame.type !== "patches") return;
    (frame.patches || []).forEach(function (p) {
      var el = byNid(p.nid);
      switch (p.op) {
        case "set-text": if (el) el.textContent = p.value; break;
        case "set-attr": if (el) el.setAttribute(p.key, p.value); break;
        case "remove-attr": if (el) el.removeAttribute(p.key); break;
        case "remove-node": if (el) el.remove(); break;
        case "replace-node": if (el) el.outerHTML = p.html; break;
        case "insert-node":
          var parent = byNid(p.parent);
          if (!parent) break;
          var tmp = document.createElement("template");
          tmp.innerHTML = p.html;
          parent.insertBefore(tmp.content, parent.children[p.index] || null);
          break;
      }
    });
  };
  window.glint = {
    setAttr: function (name, value) {
      ws.send(JSON.stringify({ type: "set-attr", name: name, value: value }));
    },
    removeAttr: function (name) {
      ws.send(JSON.stringify({ type: "remove-attr", name: name }));
    },
  };
})();`

// pageCSS keeps element pages legible without an asset pipeline.
const pageCSS = `body { font-family: system-ui, sans-serif; margin: 2rem; }
.dot { position: absolute; width: 10px; height: 10px; border-radius: 50%; background: currentColor; }
[dark-mode] { background: #111; color: #eee; }`

// elementPage wraps one rendered element in a full HTML document with
// the live client stub.
func elementPage(tag string, tree *vdom.VNode) (string, error) {
	withNIDs := render.NewRenderer(render.RendererConfig{IncludeNIDs: true})
	inner, err := withNIDs.RenderToString(tree)
	if err != nil {
		return "", err
	}

	doc := vdom.Html(
		vdom.Head(
			vdom.Meta(vdom.Charset("utf-8")),
			vdom.Title(tag),
			vdom.Style(vdom.Raw(pageCSS)),
		),
		vdom.Body(
			vdom.Div(
				vdom.Data("glint-tag", tag),
				vdom.Raw(inner),
			),
			vdom.Script(vdom.Raw(liveClientJS)),
		),
	)

	page := render.NewRenderer(render.RendererConfig{})
	html, err := page.RenderToString(doc)
	if err != nil {
		return "", err
	}
	return "<!DOCTYPE html>" + html, nil
}

// indexPage lists the defined tags with links to their pages.
func indexPage(tags []string) (string, error) {
	items := make([]*vdom.VNode, 0, len(tags))
	for _, tag := range tags {
		items = append(items, vdom.Li(
			vdom.A(vdom.Href("/e/"+tag), vdom.Code(tag)),
		))
	}

	var body *vdom.VNode
	if len(items) == 0 {
		body = vdom.P("No elements defined.")
	} else {
		body = vdom.Ul(items)
	}

	doc := vdom.Html(
		vdom.Head(
			vdom.Meta(vdom.Charset("utf-8")),
			vdom.Title("glint elements"),
			vdom.Style(vdom.Raw(pageCSS)),
		),
		vdom.Body(
			vdom.H1("Defined elements"),
			body,
		),
	)

	page := render.NewRenderer(render.RendererConfig{})
	html, err := page.RenderToString(doc)
	if err != nil {
		return "", err
	}
	return "<!DOCTYPE html>" + html, nil
}
