package testutil

// Site is a small but complete project tree: a template, two pages filling
// it, a widget, variables in the local, asset and theme scopes, media
// files and per-screen style sheets.
var Site = map[string]string{
	"res/template/page/page.htm": `<body>
	<header wood:editable="header"></header>
	<main wood:editable="body"></main>
	<footer>@string/copyright</footer>
</body>`,

	"res/page/index/index.htm": `<section wood:template="template/page#header">
	<h1>@string/title</h1>
	<img src="@image/logo" />
</section>
<section wood:template="template/page#body">
	<nav wood:compo="widget/menu"></nav>
	<p>@text/intro</p>
</section>`,
	"res/page/index/index.xml": `<string>
	<title>@string/site - Home</title>
</string>`,
	"res/page/index/index_de.xml": `<string>
	<title>@string/site - Start</title>
</string>`,
	"res/page/index/index.css": `body { color: @color/ink; }`,
	"res/page/index/index_lgd.css": `main { width: @dimen/wide; }`,
	"res/page/index/index_portrait_smd.css": `main { width: 100%; }`,
	"res/page/index/index_de.css": `h1:lang(de) { hyphens: auto; }`,
	"res/page/index/index_fr.css": `h1:lang(fr) { hyphens: none; }`,

	"res/page/about/about.htm": `<body>
	<h1>@string/site</h1>
	<p>@string/copyright</p>
</body>`,

	"res/widget/menu/menu.htm": `<ul><li>@link/home</li></ul>`,

	"res/asset/strings.xml": `<string>
	<site>Wood</site>
	<copyright>(c) @string/site</copyright>
</string>`,
	"res/asset/strings_de.xml": `<string>
	<site>Holz</site>
</string>`,
	"res/asset/text.xml": `<text>
	<intro>Built with <b>@string/site</b>.</intro>
</text>`,
	"res/asset/links.xml": `<link>
	<home>index.htm</home>
</link>`,
	"res/asset/logo.png":    "png",
	"res/asset/logo_de.png": "png",

	"res/theme/colors.xml": `<color>
	<ink>#222</ink>
</color>`,
	"res/theme/dimens.xml": `<dimen>
	<wide>1140px</wide>
</dimen>`,
}
