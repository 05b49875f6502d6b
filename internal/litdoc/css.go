package litdoc

// baseCSS lays the page out as a single prose column with code sections set
// off as inset blocks. It is appended to the highlight styles so every page
// is self-contained.
const baseCSS = `
body {
  font-family: Georgia, 'Times New Roman', serif;
  color: #252519;
  margin: 0 auto;
  padding: 1em 2em 4em;
  max-width: 52em;
  line-height: 1.45;
}
h1, h2, h3, h4, h5, h6 {
  font-family: 'Helvetica Neue', Arial, sans-serif;
  color: #111;
}
blockquote {
  border-left: 3px solid #ccc;
  margin-left: 0;
  padding-left: 1em;
  color: #40404f;
}
code {
  font-family: Menlo, Consolas, 'Liberation Mono', monospace;
  font-size: 0.85em;
}
pre {
  background: #f8f8f8;
  padding: 0.5em 1em;
  overflow-x: auto;
}
span.src {
  display: block;
  background: #f5f5fa;
  border-left: 3px solid #d8d8e8;
  margin: 1em 0;
  padding: 0.5em 1em;
  overflow-x: auto;
}
span.src > code {
  display: block;
  white-space: pre;
}
`
