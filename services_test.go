package tinydi_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/andriiyaremenko/tinydi"
)

var _ = Describe("Services", func() {
	It("should store and return values by type", func() {
		cat := &Cat{name: "Celine"}
		services := tinydi.NewServices().Set(tinydi.TypeKey[*Cat](), cat)

		v, err := services.Get(tinydi.TypeKey[*Cat]())

		Expect(err).ShouldNot(HaveOccurred())
		Expect(v).To(BeIdenticalTo(cat))
	})

	It("should return value stored by type for its name and the other way around", func() {
		cat := &Cat{name: "Celine"}
		settings := &ServiceSettings{DBConnectionString: "foodb:example;"}

		services := tinydi.NewServices().
			Set(tinydi.TypeKey[*Cat](), cat).
			Set(tinydi.Name("service_settings"), settings)

		byName, err := services.Get(tinydi.Name("Cat"))
		Expect(err).ShouldNot(HaveOccurred())

		byType, err := tinydi.Get[*ServiceSettings](ctx(), services)
		Expect(err).ShouldNot(HaveOccurred())

		Expect(byName).To(BeIdenticalTo(cat))
		Expect(byType).To(BeIdenticalTo(settings))
	})

	It("should store simple values", func() {
		services := tinydi.NewServices().
			Set(tinydi.Name("timeout"), 30).
			Set(tinydi.Name("RegionName"), "eu-west")

		timeout, err := tinydi.GetNamed[int](ctx(), services, "timeout")
		Expect(err).ShouldNot(HaveOccurred())

		region, err := tinydi.GetNamed[string](ctx(), services, "region_name")
		Expect(err).ShouldNot(HaveOccurred())

		Expect(timeout).To(Equal(30))
		Expect(region).To(Equal("eu-west"))
	})

	It("should replace stored value", func() {
		services := tinydi.NewServices().
			Set(tinydi.Name("timeout"), 30).
			Set(tinydi.Name("timeout"), 60)

		Expect(tinydi.GetNamed[int](ctx(), services, "timeout")).To(Equal(60))
	})

	It("should return nil for missing value", func() {
		services := tinydi.NewServices()

		v, err := services.Get(tinydi.Name("missing"))

		Expect(err).ShouldNot(HaveOccurred())
		Expect(v).To(BeNil())
		Expect(services.Contains(tinydi.Name("missing"))).To(BeFalse())
	})

	It("should report contained values", func() {
		services := tinydi.NewServices().Set(tinydi.TypeKey[*Cat](), &Cat{})

		Expect(services.Contains(tinydi.TypeKey[*Cat]())).To(BeTrue())
		Expect(services.Contains(tinydi.Name("cat"))).To(BeTrue())
		Expect(services.Contains(tinydi.TypeKey[*Foo]())).To(BeFalse())
	})

	It("should not return value stored by type for another type with the same name", func() {
		services := tinydi.NewServices().Set(tinydi.TypeKey[*Cat](), &Cat{})

		v, err := services.Get(tinydi.TypeKey[Cat]())

		Expect(err).ShouldNot(HaveOccurred())
		Expect(v).To(BeNil())
		Expect(services.Contains(tinydi.TypeKey[Cat]())).To(BeFalse())

		_, err = tinydi.Get[Cat](ctx(), services)
		Expect(err).To(BeAssignableToTypeOf(new(tinydi.ServiceNotFoundError)))
	})

	Context("provider", func() {
		It("should return ambient value for unregistered key", func() {
			p, err := tinydi.New().Build()
			Expect(err).ShouldNot(HaveOccurred())

			p.Services().Set(tinydi.Name("environment"), "test")

			env, err := tinydi.GetNamed[string](ctx(), p, "environment")

			Expect(err).ShouldNot(HaveOccurred())
			Expect(env).To(Equal("test"))
			Expect(p.Contains(tinydi.Name("environment"))).To(BeTrue())
		})

		It("should give factory access to ambient values and to the resolving Scope", func() {
			p, err := tinydi.New().
				AddExactScoped(tinydi.Struct[RequestContext]).
				AddTransientByFactory(func(services *tinydi.Services) (*Cat, error) {
					name, err := tinydi.GetNamed[string](ctx(), services, "cat_name")
					if err != nil {
						return nil, err
					}

					if _, err := tinydi.Get[*RequestContext](ctx(), services); err != nil {
						return nil, err
					}

					return &Cat{name: name}, nil
				}).
				Build()
			Expect(err).ShouldNot(HaveOccurred())

			p.Services().Set(tinydi.Name("CatName"), "Celine")

			cat, err := tinydi.Get[*Cat](ctx(), p)

			Expect(err).ShouldNot(HaveOccurred())
			Expect(cat.Name()).To(Equal("Celine"))
		})

		It("should keep Services of Singleton factory usable after resolving Scope is closed", func() {
			var captured *tinydi.Services

			other := &Foo{}
			p, err := tinydi.New().
				AddInstance(other).
				AddExactScoped(tinydi.Struct[RequestContext]).
				AddSingletonByFactory(func(services *tinydi.Services) *Cat {
					captured = services
					return &Cat{name: "Celine"}
				}).
				Build()
			Expect(err).ShouldNot(HaveOccurred())

			s := p.CreateScope()
			_, err = s.Get(tinydi.TypeKey[*Cat]())
			Expect(err).ShouldNot(HaveOccurred())

			fromScope, err := s.Get(tinydi.TypeKey[*RequestContext]())
			Expect(err).ShouldNot(HaveOccurred())
			Expect(s.Close()).To(Succeed())

			foo, err := captured.Get(tinydi.TypeKey[*Foo]())
			Expect(err).ShouldNot(HaveOccurred())
			Expect(foo).To(BeIdenticalTo(other))

			rc, err := captured.Get(tinydi.TypeKey[*RequestContext]())
			Expect(err).ShouldNot(HaveOccurred())
			Expect(rc).NotTo(BeNil())
			Expect(rc).NotTo(BeIdenticalTo(fromScope))
		})

		It("should resolve Scoped service for factory within the same Scope", func() {
			var fromFactory any

			p, err := tinydi.New().
				AddExactScoped(tinydi.Struct[RequestContext]).
				AddTransientByFactory(func(services *tinydi.Services) (*Cat, error) {
					rc, err := services.Get(tinydi.TypeKey[*RequestContext]())
					fromFactory = rc

					return &Cat{}, err
				}).
				Build()
			Expect(err).ShouldNot(HaveOccurred())

			s := p.CreateScope()
			defer s.Close()

			rc, err := s.Get(tinydi.TypeKey[*RequestContext]())
			Expect(err).ShouldNot(HaveOccurred())

			_, err = s.Get(tinydi.TypeKey[*Cat]())
			Expect(err).ShouldNot(HaveOccurred())

			Expect(fromFactory).To(BeIdenticalTo(rc))
		})
	})
})
