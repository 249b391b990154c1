package server

import "net/http"

const indexHTML = `<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>clockface</title>
<style>
  body { margin: 0; min-height: 100vh; display: flex; flex-direction: column; align-items: center; justify-content: center; gap: 1rem; font-family: sans-serif; background: #0f172a; color: #e2e8f0; }
  body.light { background: #f1f5f9; color: #0f172a; }
  #face { width: min(80vw, 400px); height: min(80vw, 400px); }
  #face svg { width: 100%; height: 100%; }
  button { font: inherit; padding: .4rem .8rem; }
</style>
</head>
<body>
<div id="face"></div>
<div>
  <button id="mode"></button>
  <button id="sound"></button>
  <button id="theme"></button>
</div>
<script>
const face = document.getElementById("face");
let tick = null, tickUrl = "";
let state = null, pending = false;

function patch(body) {
  return fetch("/api/mode", { method: "PATCH", headers: { "Content-Type": "application/json" }, body: JSON.stringify(body) })
    .then(r => r.json()).then(render);
}

function render(s) {
  state = s;
  if (s.tickUrl !== tickUrl) {
    tickUrl = s.tickUrl;
    tick = new Audio(tickUrl);
  }
  document.body.classList.toggle("light", s.theme === "light");
  document.getElementById("mode").textContent = s.continuous ? "Sweep" : "Step";
  const sound = document.getElementById("sound");
  sound.textContent = s.soundEnabled ? "Sound on" : "Sound off";
  sound.disabled = !s.soundToggleEnabled;
  document.getElementById("theme").textContent = s.theme === "light" ? "Dark" : "Light";
  if (pending) return;
  pending = true;
  requestAnimationFrame(() => {
    fetch("/face.svg").then(r => r.text()).then(svg => { face.innerHTML = svg; pending = false; });
  });
}

document.getElementById("mode").onclick = () => patch({ continuous: !state.continuous });
document.getElementById("sound").onclick = () => patch({ soundEnabled: !state.soundEnabled });
document.getElementById("theme").onclick = () => patch({ theme: state.theme === "light" ? "dark" : "light" });

const events = new EventSource("/api/stream");
events.addEventListener("frame", e => {
  const s = JSON.parse(e.data);
  render(s);
  if (s.ticked) { tick.currentTime = 0; tick.play().catch(() => {}); }
});
</script>
</body>
</html>
`

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(indexHTML))
}
