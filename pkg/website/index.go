// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package website

const indexPage = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>tenjin playground</title>
<style>
body { font-family: sans-serif; margin: 2em; }
textarea { width: 100%; font-family: monospace; }
pre { background: #f4f4f4; padding: 1em; }
</style>
</head>
<body>
<h1>tenjin playground</h1>
<p>Template (main.html)</p>
<textarea id="template" rows="8"><h1>{ title }</h1>
<ul>{ for item in items }<li>{ item }</li>{ end }</ul></textarea>
<p>Data (data.yml)</p>
<textarea id="data" rows="8">title: Shopping
items:
- apples
- pears & plums</textarea>
<p><button id="render">Render</button></p>
<pre id="output"></pre>
<script>
document.getElementById("render").onclick = function() {
  var body = JSON.stringify({files: [
    {name: "main.html", data: document.getElementById("template").value},
    {name: "data.yml", data: document.getElementById("data").value}
  ]});
  fetch("/render", {method: "POST", body: body})
    .then(function(resp) { return resp.json(); })
    .then(function(result) {
      var out = document.getElementById("output");
      if (result.errors) {
        out.textContent = "Error: " + result.errors;
        return;
      }
      out.textContent = (result.files || []).map(function(f) { return f.data; }).join("\n");
    });
};
</script>
</body>
</html>
`
