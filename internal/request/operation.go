package request

// Operation pairs a Definition with a typed function that turns call arguments
// into Values. Operations are declared as package variables so the set of
// operations is fixed at compile time.
type Operation[A any] struct {
	def  Definition
	bind func(A) Values
}

func NewOperation[A any](def Definition, bind func(A) Values) Operation[A] {
	return Operation[A]{def: def, bind: bind}
}

func (o Operation[A]) Name() string { return o.def.Name }

func (o Operation[A]) Definition() Definition { return o.def }

// Build resolves the operation (cached after the first call) and binds args.
func (o Operation[A]) Build(b *Builder, args A) (*BoundRequest, error) {
	d, err := b.resolver.Resolve(o.def)
	if err != nil {
		return nil, err
	}
	return b.binder.Bind(d, o.bind(args))
}

// Builder groups the Resolver and Binder used to build requests.
type Builder struct {
	resolver *Resolver
	binder   *Binder
}

func NewBuilder(resolver *Resolver, binder *Binder) *Builder {
	return &Builder{resolver: resolver, binder: binder}
}

func (b *Builder) Resolver() *Resolver { return b.resolver }
