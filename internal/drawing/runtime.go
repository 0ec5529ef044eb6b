package drawing

import (
	"html"
	"strings"

	"github.com/tidwall/gjson"
)

// runtimeBundle loads the Excalidraw renderer and mounts every scene data
// island on the page as an SVG. Scenes are found by attribute, so no
// global function is exposed.
const runtimeBundle = `<script type="module">
import { exportToSvg } from "https://esm.sh/@excalidraw/excalidraw@0.17.6?bundle";

async function mountDrawing(island) {
  const target = document.getElementById(island.dataset.drawingFor);
  if (!target) return;
  try {
    const scene = JSON.parse(island.textContent);
    const svg = await exportToSvg({
      elements: scene.elements || [],
      appState: { ...(scene.appState || {}), exportBackground: true },
      files: scene.files || {},
    });
    svg.setAttribute("width", "100%");
    svg.removeAttribute("height");
    target.replaceChildren(svg);
    target.classList.add("loaded");
  } catch (err) {
    target.textContent = "Drawing failed to render";
    target.classList.add("failed");
    console.error("drawing", island.dataset.drawingFor, err);
  }
}

function mountAll() {
  document.querySelectorAll("script[data-drawing-for]").forEach(mountDrawing);
}

if (document.readyState === "loading") {
  document.addEventListener("DOMContentLoaded", mountAll);
} else {
  mountAll();
}
</script>`

// RuntimeBundle returns the markup that must appear once on any page
// containing at least one drawing embed.
func RuntimeBundle() string {
	return runtimeBundle
}

// Embed returns the container and scene data island for one drawing.
// The scene is compacted and placed in a JSON script element; "</" is
// escaped so the payload cannot terminate the element early.
func Embed(scene []byte, id string) string {
	escapedID := html.EscapeString(id)

	var b strings.Builder
	b.WriteString(`<div class="excalidraw-container" id="`)
	b.WriteString(escapedID)
	b.WriteString(`"></div>`)
	b.WriteString("\n")
	b.WriteString(`<script type="application/json" data-drawing-for="`)
	b.WriteString(escapedID)
	b.WriteString(`">`)
	b.WriteString(sanitizeScript(gjson.GetBytes(scene, "@ugly").Raw))
	b.WriteString(`</script>`)
	return b.String()
}

// sanitizeScript escapes sequences that could close or comment out a
// script element.
func sanitizeScript(s string) string {
	return strings.NewReplacer("</", `<\/`, "<!--", `\u003c!--`).Replace(s)
}
