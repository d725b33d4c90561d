package rest

import (
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/ghodss/yaml"
	"github.com/go-chi/chi/v5"
)

// NewOpenAPI3 instantiates the OpenAPI specification for this service.
func NewOpenAPI3() openapi3.T {
	swagger := openapi3.T{
		OpenAPI: "3.0.0",
		Info: &openapi3.Info{
			Title:       "Taskboard API",
			Description: "REST API covering accounts, sessions, password resets and the task lifecycle",
			Version:     "0.1.0",
			License: &openapi3.License{
				Name: "MIT",
				URL:  "https://opensource.org/licenses/MIT",
			},
		},
		Servers: openapi3.Servers{
			&openapi3.Server{
				Description: "Local development",
				URL:         "http://0.0.0.0:9234",
			},
		},
	}

	swagger.Components = &openapi3.Components{
		SecuritySchemes: openapi3.SecuritySchemes{
			"bearerAuth": &openapi3.SecuritySchemeRef{
				Value: openapi3.NewJWTSecurityScheme(),
			},
		},
		Schemas: openapi3.Schemas{
			"User": openapi3.NewSchemaRef("",
				openapi3.NewObjectSchema().
					WithProperty("id", openapi3.NewUUIDSchema()).
					WithProperty("name", openapi3.NewStringSchema()).
					WithProperty("email", openapi3.NewStringSchema().WithFormat("email")).
					WithProperty("role", openapi3.NewStringSchema().WithEnum("admin", "user"))),
			"Task": openapi3.NewSchemaRef("",
				openapi3.NewObjectSchema().
					WithProperty("id", openapi3.NewUUIDSchema()).
					WithProperty("title", openapi3.NewStringSchema()).
					WithProperty("description", openapi3.NewStringSchema()).
					WithProperty("status", openapi3.NewStringSchema().
						WithEnum("Pending", "In Progress", "Completed")).
					WithProperty("priority", openapi3.NewStringSchema().
						WithEnum("low", "medium", "high")).
					WithPropertyRef("assigned_to", &openapi3.SchemaRef{
						Ref: "#/components/schemas/User",
					}).
					WithPropertyRef("created_by", &openapi3.SchemaRef{
						Ref: "#/components/schemas/User",
					}).
					WithProperty("created_at", openapi3.NewDateTimeSchema()).
					WithProperty("updated_at", openapi3.NewDateTimeSchema())),
		},
		RequestBodies: openapi3.RequestBodies{
			"RegisterRequest": &openapi3.RequestBodyRef{
				Value: openapi3.NewRequestBody().
					WithDescription("Request used for registering an account.").
					WithRequired(true).
					WithJSONSchema(openapi3.NewObjectSchema().
						WithProperty("name", openapi3.NewStringSchema()).
						WithProperty("email", openapi3.NewStringSchema().WithFormat("email")).
						WithProperty("password", openapi3.NewStringSchema().WithMinLength(6)).
						WithProperty("role", openapi3.NewStringSchema().WithEnum("admin", "user"))),
			},
			"LoginRequest": &openapi3.RequestBodyRef{
				Value: openapi3.NewRequestBody().
					WithDescription("Request used for logging in.").
					WithRequired(true).
					WithJSONSchema(openapi3.NewObjectSchema().
						WithProperty("email", openapi3.NewStringSchema().WithFormat("email")).
						WithProperty("password", openapi3.NewStringSchema())),
			},
			"ForgotPasswordRequest": &openapi3.RequestBodyRef{
				Value: openapi3.NewRequestBody().
					WithDescription("Request used for issuing a password reset token.").
					WithRequired(true).
					WithJSONSchema(openapi3.NewObjectSchema().
						WithProperty("email", openapi3.NewStringSchema().WithFormat("email"))),
			},
			"ResetPasswordRequest": &openapi3.RequestBodyRef{
				Value: openapi3.NewRequestBody().
					WithDescription("Request used for completing a password reset.").
					WithRequired(true).
					WithJSONSchema(openapi3.NewObjectSchema().
						WithProperty("reset_token", openapi3.NewStringSchema()).
						WithProperty("new_password", openapi3.NewStringSchema().WithMinLength(6))),
			},
			"SetRoleRequest": &openapi3.RequestBodyRef{
				Value: openapi3.NewRequestBody().
					WithDescription("Request used for selecting the actor's role.").
					WithRequired(true).
					WithJSONSchema(openapi3.NewObjectSchema().
						WithProperty("role", openapi3.NewStringSchema().WithEnum("admin", "user"))),
			},
			"CreateTaskRequest": &openapi3.RequestBodyRef{
				Value: openapi3.NewRequestBody().
					WithDescription("Request used for creating a task.").
					WithRequired(true).
					WithJSONSchema(openapi3.NewObjectSchema().
						WithProperty("title", openapi3.NewStringSchema()).
						WithProperty("description", openapi3.NewStringSchema()).
						WithProperty("priority", openapi3.NewStringSchema().
							WithEnum("low", "medium", "high")).
						WithProperty("assigned_to", openapi3.NewUUIDSchema())),
			},
			"UpdateTaskRequest": &openapi3.RequestBodyRef{
				Value: openapi3.NewRequestBody().
					WithDescription("Request used for updating a task, absent fields keep their stored value.").
					WithRequired(true).
					WithJSONSchema(openapi3.NewObjectSchema().
						WithProperty("title", openapi3.NewStringSchema()).
						WithProperty("description", openapi3.NewStringSchema()).
						WithProperty("status", openapi3.NewStringSchema().
							WithEnum("Pending", "In Progress", "Completed")).
						WithProperty("priority", openapi3.NewStringSchema().
							WithEnum("low", "medium", "high")).
						WithProperty("assigned_to", openapi3.NewUUIDSchema().WithNullable())),
			},
		},
		Responses: openapi3.Responses{
			"ErrorResponse": &openapi3.ResponseRef{
				Value: openapi3.NewResponse().
					WithDescription("Response when an error happens.").
					WithContent(openapi3.NewContentWithJSONSchema(openapi3.NewObjectSchema().
						WithProperty("error", openapi3.NewStringSchema()))),
			},
			"SessionResponse": &openapi3.ResponseRef{
				Value: openapi3.NewResponse().
					WithDescription("Response returned after registering or logging in.").
					WithContent(openapi3.NewContentWithJSONSchema(openapi3.NewObjectSchema().
						WithProperty("token", openapi3.NewStringSchema()).
						WithPropertyRef("user", &openapi3.SchemaRef{
							Ref: "#/components/schemas/User",
						}))),
			},
			"ForgotPasswordResponse": &openapi3.ResponseRef{
				Value: openapi3.NewResponse().
					WithDescription("Response carrying the freshly issued reset token.").
					WithContent(openapi3.NewContentWithJSONSchema(openapi3.NewObjectSchema().
						WithProperty("reset_token", openapi3.NewStringSchema()).
						WithProperty("expires_in", openapi3.NewInt64Schema()))),
			},
			"VerifyResetTokenResponse": &openapi3.ResponseRef{
				Value: openapi3.NewResponse().
					WithDescription("Response returned for a valid reset token.").
					WithContent(openapi3.NewContentWithJSONSchema(openapi3.NewObjectSchema().
						WithProperty("email", openapi3.NewStringSchema().WithFormat("email")))),
			},
			"UserResponse": &openapi3.ResponseRef{
				Value: openapi3.NewResponse().
					WithDescription("Response returning a single account.").
					WithContent(openapi3.NewContentWithJSONSchemaRef(&openapi3.SchemaRef{
						Ref: "#/components/schemas/User",
					})),
			},
			"UsersResponse": &openapi3.ResponseRef{
				Value: openapi3.NewResponse().
					WithDescription("Response returning the account listing.").
					WithContent(openapi3.NewContentWithJSONSchema(openapi3.NewObjectSchema().
						WithPropertyRef("users", &openapi3.SchemaRef{
							Value: &openapi3.Schema{
								Type: "array",
								Items: &openapi3.SchemaRef{
									Ref: "#/components/schemas/User",
								},
							},
						}))),
			},
			"TaskResponse": &openapi3.ResponseRef{
				Value: openapi3.NewResponse().
					WithDescription("Response returning a single task.").
					WithContent(openapi3.NewContentWithJSONSchema(openapi3.NewObjectSchema().
						WithPropertyRef("task", &openapi3.SchemaRef{
							Ref: "#/components/schemas/Task",
						}))),
			},
			"TasksResponse": &openapi3.ResponseRef{
				Value: openapi3.NewResponse().
					WithDescription("Response returning a task listing.").
					WithContent(openapi3.NewContentWithJSONSchema(openapi3.NewObjectSchema().
						WithPropertyRef("tasks", &openapi3.SchemaRef{
							Value: &openapi3.Schema{
								Type: "array",
								Items: &openapi3.SchemaRef{
									Ref: "#/components/schemas/Task",
								},
							},
						}))),
			},
		},
	}

	bearer := openapi3.NewSecurityRequirement().Authenticate("bearerAuth")

	swagger.Paths = openapi3.Paths{
		"/auth/register": &openapi3.PathItem{
			Post: &openapi3.Operation{
				OperationID: "Register",
				RequestBody: &openapi3.RequestBodyRef{
					Ref: "#/components/requestBodies/RegisterRequest",
				},
				Responses: openapi3.Responses{
					"201": &openapi3.ResponseRef{
						Ref: "#/components/responses/SessionResponse",
					},
					"400": &openapi3.ResponseRef{
						Ref: "#/components/responses/ErrorResponse",
					},
				},
			},
		},
		"/auth/login": &openapi3.PathItem{
			Post: &openapi3.Operation{
				OperationID: "Login",
				RequestBody: &openapi3.RequestBodyRef{
					Ref: "#/components/requestBodies/LoginRequest",
				},
				Responses: openapi3.Responses{
					"200": &openapi3.ResponseRef{
						Ref: "#/components/responses/SessionResponse",
					},
					"400": &openapi3.ResponseRef{
						Ref: "#/components/responses/ErrorResponse",
					},
				},
			},
		},
		"/auth/forgot-password": &openapi3.PathItem{
			Post: &openapi3.Operation{
				OperationID: "ForgotPassword",
				RequestBody: &openapi3.RequestBodyRef{
					Ref: "#/components/requestBodies/ForgotPasswordRequest",
				},
				Responses: openapi3.Responses{
					"200": &openapi3.ResponseRef{
						Ref: "#/components/responses/ForgotPasswordResponse",
					},
					"404": &openapi3.ResponseRef{
						Ref: "#/components/responses/ErrorResponse",
					},
				},
			},
		},
		"/auth/verify-reset-token/{token}": &openapi3.PathItem{
			Get: &openapi3.Operation{
				OperationID: "VerifyResetToken",
				Parameters: []*openapi3.ParameterRef{
					{
						Value: openapi3.NewPathParameter("token").
							WithSchema(openapi3.NewStringSchema()),
					},
				},
				Responses: openapi3.Responses{
					"200": &openapi3.ResponseRef{
						Ref: "#/components/responses/VerifyResetTokenResponse",
					},
					"400": &openapi3.ResponseRef{
						Ref: "#/components/responses/ErrorResponse",
					},
				},
			},
		},
		"/auth/reset-password": &openapi3.PathItem{
			Post: &openapi3.Operation{
				OperationID: "ResetPassword",
				RequestBody: &openapi3.RequestBodyRef{
					Ref: "#/components/requestBodies/ResetPasswordRequest",
				},
				Responses: openapi3.Responses{
					"200": &openapi3.ResponseRef{
						Value: openapi3.NewResponse().WithDescription("Password was replaced."),
					},
					"400": &openapi3.ResponseRef{
						Ref: "#/components/responses/ErrorResponse",
					},
				},
			},
		},
		"/auth/role": &openapi3.PathItem{
			Put: &openapi3.Operation{
				OperationID: "SetRole",
				Security:    &openapi3.SecurityRequirements{bearer},
				RequestBody: &openapi3.RequestBodyRef{
					Ref: "#/components/requestBodies/SetRoleRequest",
				},
				Responses: openapi3.Responses{
					"200": &openapi3.ResponseRef{
						Ref: "#/components/responses/UserResponse",
					},
					"400": &openapi3.ResponseRef{
						Ref: "#/components/responses/ErrorResponse",
					},
				},
			},
		},
		"/auth/users": &openapi3.PathItem{
			Get: &openapi3.Operation{
				OperationID: "ListUsers",
				Security:    &openapi3.SecurityRequirements{bearer},
				Responses: openapi3.Responses{
					"200": &openapi3.ResponseRef{
						Ref: "#/components/responses/UsersResponse",
					},
					"403": &openapi3.ResponseRef{
						Ref: "#/components/responses/ErrorResponse",
					},
				},
			},
		},
		"/tasks": &openapi3.PathItem{
			Post: &openapi3.Operation{
				OperationID: "CreateTask",
				Security:    &openapi3.SecurityRequirements{bearer},
				RequestBody: &openapi3.RequestBodyRef{
					Ref: "#/components/requestBodies/CreateTaskRequest",
				},
				Responses: openapi3.Responses{
					"201": &openapi3.ResponseRef{
						Ref: "#/components/responses/TaskResponse",
					},
					"403": &openapi3.ResponseRef{
						Ref: "#/components/responses/ErrorResponse",
					},
				},
			},
		},
		"/tasks/all": &openapi3.PathItem{
			Get: &openapi3.Operation{
				OperationID: "ListAllTasks",
				Security:    &openapi3.SecurityRequirements{bearer},
				Responses: openapi3.Responses{
					"200": &openapi3.ResponseRef{
						Ref: "#/components/responses/TasksResponse",
					},
					"403": &openapi3.ResponseRef{
						Ref: "#/components/responses/ErrorResponse",
					},
				},
			},
		},
		"/tasks/mine": &openapi3.PathItem{
			Get: &openapi3.Operation{
				OperationID: "ListOwnTasks",
				Security:    &openapi3.SecurityRequirements{bearer},
				Responses: openapi3.Responses{
					"200": &openapi3.ResponseRef{
						Ref: "#/components/responses/TasksResponse",
					},
					"401": &openapi3.ResponseRef{
						Ref: "#/components/responses/ErrorResponse",
					},
				},
			},
		},
		"/tasks/{id}": &openapi3.PathItem{
			Put: &openapi3.Operation{
				OperationID: "UpdateTask",
				Security:    &openapi3.SecurityRequirements{bearer},
				Parameters: []*openapi3.ParameterRef{
					{
						Value: openapi3.NewPathParameter("id").
							WithSchema(openapi3.NewUUIDSchema()),
					},
				},
				RequestBody: &openapi3.RequestBodyRef{
					Ref: "#/components/requestBodies/UpdateTaskRequest",
				},
				Responses: openapi3.Responses{
					"200": &openapi3.ResponseRef{
						Ref: "#/components/responses/TaskResponse",
					},
					"404": &openapi3.ResponseRef{
						Ref: "#/components/responses/ErrorResponse",
					},
				},
			},
			Delete: &openapi3.Operation{
				OperationID: "DeleteTask",
				Security:    &openapi3.SecurityRequirements{bearer},
				Parameters: []*openapi3.ParameterRef{
					{
						Value: openapi3.NewPathParameter("id").
							WithSchema(openapi3.NewUUIDSchema()),
					},
				},
				Responses: openapi3.Responses{
					"200": &openapi3.ResponseRef{
						Value: openapi3.NewResponse().WithDescription("Task was deleted."),
					},
					"404": &openapi3.ResponseRef{
						Ref: "#/components/responses/ErrorResponse",
					},
				},
			},
		},
		"/tasks/{id}/advance": &openapi3.PathItem{
			Post: &openapi3.Operation{
				OperationID: "AdvanceTask",
				Security:    &openapi3.SecurityRequirements{bearer},
				Parameters: []*openapi3.ParameterRef{
					{
						Value: openapi3.NewPathParameter("id").
							WithSchema(openapi3.NewUUIDSchema()),
					},
				},
				Responses: openapi3.Responses{
					"200": &openapi3.ResponseRef{
						Ref: "#/components/responses/TaskResponse",
					},
					"404": &openapi3.ResponseRef{
						Ref: "#/components/responses/ErrorResponse",
					},
				},
			},
		},
	}

	return swagger
}

// RegisterOpenAPI serves the specification in both supported encodings.
func RegisterOpenAPI(r chi.Router) {
	swagger := NewOpenAPI3()

	r.Get("/openapi3.json", func(w http.ResponseWriter, r *http.Request) {
		renderResponse(w, &swagger, http.StatusOK)
	})

	r.Get("/openapi3.yaml", func(w http.ResponseWriter, r *http.Request) {
		data, err := yaml.Marshal(&swagger)
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/x-yaml")
		w.WriteHeader(http.StatusOK)

		_, _ = w.Write(data)
	})
}
