package handlers

import (
	"polynomial-residence/docs"

	"github.com/gofiber/fiber/v3"
)

// ============================================================
// Swagger Handlers
// ============================================================

// SwaggerSpec serves the embedded OpenAPI YAML.
func SwaggerSpec(c fiber.Ctx) error {
	c.Type("yaml")
	return c.Send(docs.OpenAPI)
}

// swaggerPage lists the read-only API grouped by tag. Try-it-out is limited
// to GET since nothing under /api/v1 changes state.
const swaggerPage = `<!doctype html>
<html>
<head>
  <meta charset="utf-8">
  <title>Polynomial Residence API</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist/swagger-ui.css">
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist/swagger-ui-bundle.js"></script>
<script>
  window.onload = () => {
    window.ui = SwaggerUIBundle({
      url: '/docs/openapi.yaml',
      dom_id: '#swagger-ui',
      deepLinking: true,
      docExpansion: 'list',
      defaultModelsExpandDepth: 0,
      displayOperationId: true,
      tagsSorter: (a, b) => ['catalog', 'floor-plan', 'invoice', 'health'].indexOf(a) - ['catalog', 'floor-plan', 'invoice', 'health'].indexOf(b),
      supportedSubmitMethods: ['get'],
      presets: [SwaggerUIBundle.presets.apis],
    });
  };
</script>
</body>
</html>`

// SwaggerUI serves the API browser reading /docs/openapi.yaml.
func SwaggerUI(c fiber.Ctx) error {
	c.Type("html")
	return c.SendString(swaggerPage)
}
