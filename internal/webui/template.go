package webui

import "html/template"

type indexData struct {
	Symbols   string
	MinYear   int
	MaxYear   int
	StartYear int
	EndYear   int
	Intervals []string
}

var indexTmpl = template.Must(template.New("index").Parse(indexHTML))

const indexHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Stock Price Comparison</title>
<script src="https://cdn.plot.ly/plotly-2.32.0.min.js"></script>
<style>
  body { font-family: Arial, sans-serif; margin: 1rem 2rem; }
  #controls { display: flex; gap: 1rem; align-items: center; flex-wrap: wrap; margin-bottom: 1rem; }
  #controls label { font-size: 0.9rem; }
  #errors { color: #8a1f11; margin: 0.5rem 0; white-space: pre-line; }
  #chart { width: 100%; height: 600px; }
</style>
</head>
<body>
<h2>Stock Price Comparison</h2>
<div id="controls">
  <label>Symbols <input id="symbols" type="text" value="{{.Symbols}}" size="24"></label>
  <label>Start Year <input id="start" type="number" min="{{.MinYear}}" max="{{.MaxYear}}" value="{{.StartYear}}"></label>
  <label>End Year <input id="end" type="number" min="{{.MinYear}}" max="{{.MaxYear}}" value="{{.EndYear}}"></label>
  <label>Interval
    <select id="interval">
      {{range .Intervals}}<option value="{{.}}">{{.}}</option>{{end}}
    </select>
  </label>
  <label><input id="ma" type="checkbox"> 200-Day Moving Average</label>
  <button id="plot">Plot Stock Data</button>
</div>
<div id="errors"></div>
<div id="chart"></div>
<script>
const colors = ["steelblue", "firebrick", "green"];

async function plot() {
  const params = new URLSearchParams({
    symbols: document.getElementById("symbols").value,
    start: document.getElementById("start").value,
    end: document.getElementById("end").value,
    interval: document.getElementById("interval").value,
    ma: document.getElementById("ma").checked,
  });
  const resp = await fetch("/api/series?" + params);
  if (!resp.ok) {
    document.getElementById("errors").textContent = await resp.text();
    return;
  }
  const data = await resp.json();

  const bySymbol = {};
  for (const p of data.points || []) {
    (bySymbol[p.symbol] = bySymbol[p.symbol] || []).push(p);
  }

  const traces = [];
  let i = 0;
  for (const [symbol, pts] of Object.entries(bySymbol)) {
    const color = colors[i++ % colors.length];
    traces.push({
      x: pts.map(p => p.date),
      y: pts.map(p => p.close),
      mode: "lines",
      name: symbol,
      line: { color: color, width: 2 },
      hovertemplate: "%{x|%Y-%m-%d}<br>$%{y:.2f}<extra>" + symbol + "</extra>",
    });
    const ma = (data.ma || {})[symbol];
    if (ma) {
      const valid = ma.filter(p => p.valid);
      traces.push({
        x: valid.map(p => p.date),
        y: valid.map(p => p.value),
        mode: "lines",
        name: symbol + " 200D MA",
        line: { color: color, width: 2, dash: "dot" },
      });
    }
  }

  document.getElementById("errors").textContent =
    Object.values(data.errors || {}).join("\n");

  Plotly.newPlot("chart", traces, {
    title: "Close Price (" + data.interval + ")",
    hovermode: "x unified",
    xaxis: { title: "Date" },
    yaxis: { title: "Close Price (USD)" },
  }, { responsive: true });
}

document.getElementById("plot").addEventListener("click", plot);
plot();
</script>
</body>
</html>
`
