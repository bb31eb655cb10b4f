package tinydi_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/andriiyaremenko/tinydi"
)

var _ = Describe("Build", func() {
	It("should return error for circular dependency", func() {
		_, err := tinydi.New().
			AddTransient(tinydi.TypeKey[ICircle](), tinydi.Struct[Circle]).
			Build()

		Expect(err).Should(HaveOccurred())
		Expect(err).Should(BeAssignableToTypeOf(new(tinydi.ServiceBuilderError)))
		Expect(errors.Unwrap(err)).Should(BeAssignableToTypeOf(new(tinydi.CircularDependencyError)))
		Expect(err.Error()).Should(ContainSubstring("Circle"))
	})

	It("should return error for circular dependency between two types", func() {
		_, err := tinydi.New().
			AddExactTransient(tinydi.Struct[Jing]).
			AddExactTransient(tinydi.Struct[Jang]).
			Build()

		var circular *tinydi.CircularDependencyError
		Expect(errors.As(err, &circular)).Should(BeTrue())
		Expect(circular.Chain).Should(HaveLen(3))
		Expect(circular.Chain[0].Equal(circular.Chain[2])).Should(BeTrue())
	})

	It("should return error for deep circular dependency", func() {
		_, err := tinydi.New().
			AddExactTransient(tinydi.Struct[W]).
			AddExactTransient(tinydi.Struct[X]).
			AddExactTransient(tinydi.Struct[Y]).
			AddExactTransient(tinydi.Struct[Z]).
			Build()

		var circular *tinydi.CircularDependencyError
		Expect(errors.As(err, &circular)).Should(BeTrue())
		Expect(circular.Chain).Should(HaveLen(5))
		Expect(err.Error()).Should(ContainSubstring("*tinydi_test.W -> *tinydi_test.X"))
	})

	It("should return error for nested circular dependency", func() {
		_, err := tinydi.New().
			AddTransient(tinydi.TypeKey[ICircle](), tinydi.Struct[Circle]).
			AddExactTransient(tinydi.Struct[TrickyCircle]).
			Build()

		var circular *tinydi.CircularDependencyError
		Expect(errors.As(err, &circular)).Should(BeTrue())
		Expect(err.Error()).Should(ContainSubstring("Circle"))
	})

	It("should return error for circular dependency regardless of lifetime", func() {
		_, err := tinydi.New().
			AddExactSingleton(tinydi.Struct[Jing]).
			AddExactScoped(tinydi.Struct[Jang]).
			Build()

		var circular *tinydi.CircularDependencyError
		Expect(errors.As(err, &circular)).Should(BeTrue())
	})

	It("should not return error for deep circular dependency broken by factory", func() {
		p, err := tinydi.New().
			AddExactTransient(tinydi.Struct[W]).
			AddExactTransient(tinydi.Struct[X]).
			AddExactTransient(tinydi.Struct[Y]).
			AddTransientByFactory(func(*tinydi.Services) *Z { return &Z{} }).
			Build()

		Expect(err).ShouldNot(HaveOccurred())

		w, err := tinydi.Get[*W](ctx(), p)

		Expect(err).ShouldNot(HaveOccurred())
		Expect(w.X).NotTo(BeNil())
		Expect(w.X.Y).NotTo(BeNil())
		Expect(w.X.Y.Z).NotTo(BeNil())
		Expect(w.X.Y.Z.W).To(BeNil())
	})

	It("should not return error for circular dependency broken by factory", func() {
		p, err := tinydi.New().
			AddExactTransient(tinydi.Struct[Jing]).
			AddTransientByFactory(func(*tinydi.Services) *Jang { return &Jang{} }).
			Build()

		Expect(err).ShouldNot(HaveOccurred())

		jing, err := tinydi.Get[*Jing](ctx(), p)

		Expect(err).ShouldNot(HaveOccurred())
		Expect(jing.Jang).NotTo(BeNil())
		Expect(jing.Jang.Jing).To(BeNil())
	})

	It("should not return error for circular types broken by instance", func() {
		circle := &Circle{Circle: &Circle{}}
		p, err := tinydi.New().
			AddInstance(circle).
			AddExactTransient(tinydi.Struct[Shape]).
			Build()

		Expect(err).ShouldNot(HaveOccurred())

		shape, err := tinydi.Get[*Shape](ctx(), p)

		Expect(err).ShouldNot(HaveOccurred())
		Expect(shape.Circle).To(BeIdenticalTo(circle))
	})

	It("should return error for union parameter", func() {
		_, err := tinydi.New().
			AddExactTransient(tinydi.Struct[Foo]).
			AddExactTransient(tinydi.Struct[TypeWithOptional]).
			Build()

		var union *tinydi.UnsupportedUnionTypeError
		Expect(errors.As(err, &union)).Should(BeTrue())
		Expect(union.Param).Should(Equal("Foo"))
		Expect(err.Error()).Should(ContainSubstring("Foo"))
	})

	It("should return error for union parameter declared with Func", func() {
		_, err := tinydi.New().
			AddExactTransient(tinydi.Struct[Foo]).
			AddExactTransient(tinydi.Struct[Cat]).
			AddExactTransient(tinydi.Func(
				func(pet any) *Shape { return &Shape{} },
				tinydi.Union("pet", tinydi.TypeKey[*Foo](), tinydi.TypeKey[*Cat]()),
			)).
			Build()

		var union *tinydi.UnsupportedUnionTypeError
		Expect(errors.As(err, &union)).Should(BeTrue())
		Expect(union.Param).Should(Equal("pet"))
		Expect(union.Alternatives).Should(HaveLen(2))
	})

	It("should return error for missing dependency", func() {
		_, err := tinydi.New().
			AddExactTransient(tinydi.Struct[HelpController]).
			Build()

		Expect(err).Should(BeAssignableToTypeOf(new(tinydi.ServiceBuilderError)))

		var missing *tinydi.MissingDependencyError
		Expect(errors.As(err, &missing)).Should(BeTrue())
		Expect(missing.Param).Should(Equal("Logger"))
		Expect(missing.Declared.Equal(tinydi.TypeKey[*Logger]())).Should(BeTrue())
	})

	It("should return error for missing dependency of a nested service", func() {
		_, err := tinydi.New().
			AddExactTransient(tinydi.Struct[C]).
			AddExactTransient(tinydi.Struct[B]).
			Build()

		var missing *tinydi.MissingDependencyError
		Expect(errors.As(err, &missing)).Should(BeTrue())
		Expect(missing.Param).Should(Equal("A"))
	})

	It("should build interdependent services", func() {
		p, err := tinydi.New().
			AddExactTransient(tinydi.Struct[A]).
			AddExactTransient(tinydi.Struct[B]).
			AddExactTransient(tinydi.Struct[C]).
			Build()

		Expect(err).ShouldNot(HaveOccurred())

		c, err := tinydi.Get[*C](ctx(), p)

		Expect(err).ShouldNot(HaveOccurred())
		Expect(c.A).NotTo(BeNil())
		Expect(c.B).NotTo(BeNil())
		Expect(c.B.A).NotTo(BeNil())
		Expect(c.B.A).NotTo(BeIdenticalTo(c.A))
	})
})
