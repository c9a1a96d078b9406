package webview

const htmlContent = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Barricade Timer</title>
<style>
  body { margin: 0; background: transparent; font-family: sans-serif; color: #fff; text-shadow: 0 0 4px #000; }
  #timer { font-size: 48px; font-weight: bold; white-space: pre-line; min-height: 1.2em; }
  #status { font-size: 20px; white-space: pre-line; }
  .countdown_safe { color: #4caf50; }
  .countdown_caution { color: #ffc107; }
  .countdown_urgent, .critical, .error { color: #f44336; }
  .alert_active { color: #ff5722; }
  .canceled { color: #9e9e9e; }
  .prayer_melee { color: #e53935; }
  .prayer_ranged { color: #43a047; }
  .prayer_magic { color: #1e88e5; }
  .name_calling { color: #ab47bc; }
  .directional { color: #26c6da; }
  .info, .info_large { color: #fdd835; }
  .info_large { font-size: 28px; }
</style>
</head>
<body>
<div id="timer"></div>
<div id="status"></div>
<script>
(function connect() {
  var ws = new WebSocket((location.protocol === "https:" ? "wss://" : "ws://") + location.host + "/ws");
  ws.onmessage = function (ev) {
    var msg = JSON.parse(ev.data);
    var el = document.getElementById(msg.region);
    if (!el) return;
    el.textContent = msg.content;
    el.className = msg.style;
  };
  ws.onclose = function () { setTimeout(connect, 1000); };
})();
</script>
</body>
</html>
`
