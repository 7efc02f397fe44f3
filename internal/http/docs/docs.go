// Package docs регистрирует описание API в swag, откуда его отдаёт
// http-swagger на /docs/doc.json. Пути строятся по списку смонтированных
// ресурсов и таблиц связей, поэтому описание не расходится с роутером.
package docs

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/swaggo/swag"
)

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "paths": %s
}`

// SwaggerInfo общие сведения об API.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Fitness Manager API",
	Description:      "REST API для клиентов, диет, продуктов питания, упражнений, тренировок и товаров.",
	InfoInstanceName: swag.Name,
}

var once sync.Once

// Register собирает описание и регистрирует его в swag. Повторные вызовы
// ничего не делают.
func Register(resources, links []string) error {
	var err error
	once.Do(func() {
		var paths []byte
		paths, err = json.MarshalIndent(Paths(resources, links), "    ", "    ")
		if err != nil {
			err = fmt.Errorf("docs.Register: %w", err)
			return
		}
		SwaggerInfo.SwaggerTemplate = fmt.Sprintf(docTemplate, paths)
		swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
	})
	return err
}

type operation struct {
	Summary    string              `json:"summary"`
	Tags       []string            `json:"tags"`
	Security   []map[string][]any  `json:"security,omitempty"`
	Consumes   []string            `json:"consumes,omitempty"`
	Produces   []string            `json:"produces"`
	Parameters []parameter         `json:"parameters,omitempty"`
	Responses  map[string]response `json:"responses"`
}

type parameter struct {
	Name     string         `json:"name"`
	In       string         `json:"in"`
	Required bool           `json:"required"`
	Type     string         `json:"type,omitempty"`
	Schema   map[string]any `json:"schema,omitempty"`
}

type response struct {
	Description string `json:"description"`
}

var bearer = []map[string][]any{{"BearerAuth": {}}}

func op(tag, summary string, params []parameter, codes ...string) operation {
	o := operation{
		Summary:    summary,
		Tags:       []string{tag},
		Security:   bearer,
		Produces:   []string{"application/json"},
		Parameters: params,
		Responses:  map[string]response{"401": {Description: "Unauthorized"}},
	}
	for _, c := range codes {
		o.Responses[c] = response{Description: statusText[c]}
	}
	for _, p := range params {
		if p.In == "body" {
			o.Consumes = []string{"application/json"}
		}
	}
	return o
}

var statusText = map[string]string{
	"200": "OK",
	"201": "Created",
	"400": "Bad Request",
	"403": "Forbidden",
	"404": "Not Found",
	"409": "Conflict",
	"500": "Internal Server Error",
	"503": "Service Unavailable",
}

func pathInt(name string) parameter {
	return parameter{Name: name, In: "path", Required: true, Type: "integer"}
}

func queryInt(name string) parameter {
	return parameter{Name: name, In: "query", Type: "integer"}
}

var body = parameter{Name: "request", In: "body", Required: true, Schema: map[string]any{"type": "object"}}

// Paths возвращает описание путей API.
func Paths(resources, links []string) map[string]map[string]operation {
	paths := map[string]map[string]operation{
		"/health": {"get": {
			Summary:   "Проверка доступности базы",
			Tags:      []string{"health"},
			Produces:  []string{"application/json"},
			Responses: map[string]response{"200": {Description: "OK"}, "503": {Description: statusText["503"]}},
		}},
		"/api/users/me": {"get": op("users", "Текущий пользователь", nil, "200", "500")},
	}

	for _, name := range resources {
		base := "/api/" + name
		paths[base] = map[string]operation{
			"get":  op(name, "Список записей", []parameter{queryInt("limit"), queryInt("offset")}, "200", "400", "500"),
			"post": op(name, "Создать запись", []parameter{body}, "201", "400", "403", "409", "500"),
		}
		export := op(name, "Выгрузить все записи в CSV", nil, "200", "500")
		export.Produces = []string{"text/csv"}
		paths[base+"/export"] = map[string]operation{"get": export}
		id := []parameter{pathInt("id")}
		paths[base+"/{id}"] = map[string]operation{
			"get":    op(name, "Получить запись", id, "200", "400", "404", "500"),
			"put":    op(name, "Изменить запись", append(id, body), "200", "400", "403", "404", "409", "500"),
			"delete": op(name, "Удалить запись", id, "200", "400", "403", "404", "500"),
		}
	}

	for _, name := range links {
		base := "/api/" + name
		paths[base] = map[string]operation{
			"get":  op(name, "Список связей", []parameter{queryInt("limit"), queryInt("offset")}, "200", "400", "500"),
			"post": op(name, "Создать связь", []parameter{body}, "201", "400", "403", "409", "500"),
		}
		paths[base+"/{parentID}"] = map[string]operation{
			"get": op(name, "Связи одного родителя", []parameter{pathInt("parentID")}, "200", "400", "500"),
		}
		keys := []parameter{pathInt("parentID"), pathInt("childID")}
		paths[base+"/{parentID}/{childID}"] = map[string]operation{
			"put":    op(name, "Изменить связь", append(keys, body), "200", "400", "403", "404", "500"),
			"delete": op(name, "Удалить связь", keys, "200", "400", "403", "404", "500"),
		}
	}
	return paths
}
