/*
This package resolves object graphs from a registry of services.
Services are registered in a Container under a type or a name,
Container is validated once by Build and resulting Provider constructs services on demand
honoring their lifetime.

To install tinydi:

	go get -u github.com/andriiyaremenko/tinydi

How to use:

	type CatsRepository interface {
		Get(id int) (*Cat, error)
	}

	type SQLCatsRepository struct {
		DB *sql.DB
	}

	type CatsController struct {
		Repo   CatsRepository
		Logger any `di:"logger"`
	}

	provider, err := tinydi.New().
		AddInstance(db).
		AddScoped(tinydi.TypeKey[CatsRepository](), tinydi.Struct[SQLCatsRepository]).
		AddTransientByFactory(func(_ *tinydi.Services, owner tinydi.Key) *slog.Logger {
			return slog.Default().With("component", owner.Name())
		}).
		AddAlias("logger", tinydi.TypeKey[*slog.Logger]()).
		AddExactTransient(tinydi.Struct[CatsController]).
		Build()
	if err != nil {
		// handle error
	}

	func MyRequestHandler(w http.ResponseWriter, req *http.Request) {
		scope := provider.CreateScope()
		defer scope.Close()

		ctx := tinydi.WithScope(req.Context(), scope)
		controller, err := tinydi.Get[*CatsController](ctx, provider)
		if err != nil {
			// handle error
		}

		// use controller
	}

Lifetime constants:

	tinydi.Transient - new instance for every request
	tinydi.Scoped - same instance within one Scope
	tinydi.Singleton - same instance for Provider lifetime

Constructors:
  - tinydi.Struct[Type] - would return *Type instance with filled public fields using registered services.
  - tinydi.Func(fn, tinydi.Arg("a"), ...) - would call fn with registered services.

Factories:
  - func() T
  - func(*tinydi.Services) T
  - func(*tinydi.Services, tinydi.Key) T - Key is the service that requested T

all of them can also return (T, error).
Singleton factories receive Services bound to the Provider, not to the Scope
that triggered them, so they can keep it for later lookups.
A Singleton factory must not request its own service: the per-service lock
is not reentrant, so such a call hangs instead of recursing.

Constructor parameters are resolved in order by:
exact alias (SetAlias), declared type, added aliases (AddAlias), parameter name.
Parameter name is matched with Canonicalize(name) of registered services,
so field `CatsRepository` matches service registered for `CatsRepository` type
or under "cats_repository" name.
*/
package tinydi
